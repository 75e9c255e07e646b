package repository

import (
	"context"

	"telegram-phrase-bot/internal/domain/model"
)

// PhraseRepository owns approved phrases. Add performs no content validation;
// bulk callers filter blank lines before insertion.
type PhraseRepository interface {
	Add(ctx context.Context, tx Tx, p *model.Phrase) (int64, error)
	// RandomApproved returns one phrase chosen uniformly among approved rows,
	// or domain.ErrNoApprovedPhrases when none exist. Sampling is unweighted,
	// so repeats across consecutive calls are expected.
	RandomApproved(ctx context.Context, tx Tx) (*model.Phrase, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Phrase, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

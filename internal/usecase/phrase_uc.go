package usecase

import (
	"context"
	"strings"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
	"telegram-phrase-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ PhraseUseCase = (*phraseUC)(nil)

// PhraseUseCase exposes phrase delivery and admin bulk import.
type PhraseUseCase interface {
	// Random returns one uniformly sampled approved phrase, or
	// domain.ErrNoApprovedPhrases when the store is empty.
	Random(ctx context.Context) (*model.Phrase, error)
	// BulkAdd splits block on newlines, trims each line, discards blanks and
	// inserts one approved phrase per remaining line. Admin only.
	BulkAdd(ctx context.Context, actorID int64, block string) (int, error)
	List(ctx context.Context, offset, limit int) ([]*model.Phrase, error)
	Count(ctx context.Context) (int, error)
}

type phraseUC struct {
	phrases repository.PhraseRepository
	adminID int64
	log     *zerolog.Logger
}

func NewPhraseUseCase(phrases repository.PhraseRepository, adminID int64, logger *zerolog.Logger) PhraseUseCase {
	l := logger.With().Str("component", "PhraseUC").Logger()
	return &phraseUC{phrases: phrases, adminID: adminID, log: &l}
}

func (uc *phraseUC) Random(ctx context.Context) (*model.Phrase, error) {
	return uc.phrases.RandomApproved(ctx, repository.NoTX)
}

func (uc *phraseUC) BulkAdd(ctx context.Context, actorID int64, block string) (int, error) {
	defer logging.TraceDuration(uc.log, "PhraseUC.BulkAdd")()

	if actorID != uc.adminID {
		return 0, domain.ErrAccessDenied
	}

	count := 0
	for _, line := range strings.Split(block, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		p, err := model.NewPhrase(clean, true)
		if err != nil {
			return count, err
		}
		if _, err := uc.phrases.Add(ctx, repository.NoTX, p); err != nil {
			uc.log.Error().Err(err).Msg("bulk add insert failed")
			return count, err
		}
		count++
	}
	uc.log.Info().Int("count", count).Msg("bulk added phrases")
	return count, nil
}

func (uc *phraseUC) List(ctx context.Context, offset, limit int) ([]*model.Phrase, error) {
	return uc.phrases.List(ctx, repository.NoTX, offset, limit)
}

func (uc *phraseUC) Count(ctx context.Context) (int, error) {
	return uc.phrases.Count(ctx, repository.NoTX)
}

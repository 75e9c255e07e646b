package repository

import (
	"context"

	"telegram-phrase-bot/internal/domain/model"
)

// SuggestionRepository owns pending suggestions. A suggestion exists from
// submission until a moderation decision deletes it; FindByID returns
// domain.ErrNotFound once a decision has been recorded.
type SuggestionRepository interface {
	Add(ctx context.Context, tx Tx, s *model.Suggestion) (int64, error)
	// ListPending returns all pending suggestions in insertion order.
	ListPending(ctx context.Context, tx Tx) ([]*model.Suggestion, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Suggestion, error)
	Delete(ctx context.Context, tx Tx, id int64) error
	Count(ctx context.Context, tx Tx) (int, error)
}

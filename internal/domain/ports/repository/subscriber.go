package repository

import (
	"context"

	"telegram-phrase-bot/internal/domain/model"
)

// SubscriberRepository owns daily-broadcast membership.
type SubscriberRepository interface {
	// Add is idempotent: subscribing an already-subscribed identity leaves
	// exactly one row and returns nil.
	Add(ctx context.Context, tx Tx, tgID int64) error
	Remove(ctx context.Context, tx Tx, tgID int64) error
	List(ctx context.Context, tx Tx) ([]*model.Subscriber, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriberUseCase = (*subscriberUC)(nil)

// SubscriberUseCase toggles daily-broadcast membership.
type SubscriberUseCase interface {
	// Subscribe is idempotent; subscribing twice leaves one row.
	Subscribe(ctx context.Context, tgID int64) error
	Unsubscribe(ctx context.Context, tgID int64) error
	List(ctx context.Context) ([]*model.Subscriber, error)
	Count(ctx context.Context) (int, error)
}

type subscriberUC struct {
	subscribers repository.SubscriberRepository
	log         *zerolog.Logger
}

func NewSubscriberUseCase(subscribers repository.SubscriberRepository, logger *zerolog.Logger) SubscriberUseCase {
	l := logger.With().Str("component", "SubscriberUC").Logger()
	return &subscriberUC{subscribers: subscribers, log: &l}
}

func (uc *subscriberUC) Subscribe(ctx context.Context, tgID int64) error {
	if err := uc.subscribers.Add(ctx, repository.NoTX, tgID); err != nil {
		return err
	}
	uc.log.Info().Int64("tg_id", tgID).Msg("subscribed")
	return nil
}

func (uc *subscriberUC) Unsubscribe(ctx context.Context, tgID int64) error {
	if err := uc.subscribers.Remove(ctx, repository.NoTX, tgID); err != nil {
		return err
	}
	uc.log.Info().Int64("tg_id", tgID).Msg("unsubscribed")
	return nil
}

func (uc *subscriberUC) List(ctx context.Context) ([]*model.Subscriber, error) {
	return uc.subscribers.List(ctx, repository.NoTX)
}

func (uc *subscriberUC) Count(ctx context.Context) (int, error) {
	return uc.subscribers.Count(ctx, repository.NoTX)
}

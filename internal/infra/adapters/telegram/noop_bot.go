package telegram

import (
	"context"
	"log"
	"time"

	"telegram-phrase-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev testing.
// It logs messages instead of sending real Telegram messages.
type NoopBotAdapter struct{}

func NewNoopBotAdapter() *NoopBotAdapter {
	return &NoopBotAdapter{}
}

// SendMessage logs the message and simulates a small delay.
func (b *NoopBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	log.Printf("[noop-telegram] To user %d: %s\n", tgID, text)
	return nil
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	log.Printf("[noop-telegram] To user %d: %s [buttons: %v]\n", tgID, text, rows)
	return nil
}

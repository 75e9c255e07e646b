package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// TelegramBotAdapter is the outbound port for chat delivery. The broadcast
// use case and the command handlers both send through it.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
}

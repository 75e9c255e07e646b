package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-phrase-bot/internal/application"
	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/ports/adapter"
	"telegram-phrase-bot/internal/domain/ports/repository"
	"telegram-phrase-bot/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":       r.handleStartCommand,
		"newphrase":   r.handleNewPhraseCommand,
		"subscribe":   r.handleSubscribeCommand,
		"unsubscribe": r.handleUnsubscribeCommand,
		"suggest":     r.handleSuggestCommand,

		// These handlers are wrapped in the adminOnly middleware.
		"moderate": r.adminOnly(r.handleModerateCommand),
		"bulkadd":  r.adminOnly(r.handleBulkAddCommand),
	}
}

// adminOnly rejects commands from any identity other than the configured admin.
func (r *RealTelegramBotAdapter) adminOnly(next commandHandler) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		if !r.isAdmin(message.From.ID) {
			metrics.IncCommand("/"+message.Command(), "unauthorized")
			return r.SendMessage(ctx, message.Chat.ID, "This command is admin-only.")
		}
		metrics.IncCommand("/"+message.Command(), "ok")
		return next(ctx, message)
	}
}

func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	metrics.IncCommand("/start", "ok")
	rows := [][]adapter.InlineButton{
		{{Text: "📝 New phrase", Data: "phrase:new"}},
	}
	return r.SendButtons(ctx, message.Chat.ID, r.facade.HandleStart(ctx), rows)
}

func (r *RealTelegramBotAdapter) handleNewPhraseCommand(ctx context.Context, message *tgbotapi.Message) error {
	metrics.IncCommand("/newphrase", "ok")
	return r.deliverRandomPhrase(ctx, message.Chat.ID)
}

// deliverRandomPhrase is shared by the /newphrase command and the phrase:new
// button so neither path needs to wrap the other's message shape.
func (r *RealTelegramBotAdapter) deliverRandomPhrase(ctx context.Context, chatID int64) error {
	text, err := r.facade.HandleRandomPhrase(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("random phrase failed")
		text = "Something went wrong. Try again later."
	}
	rows := [][]adapter.InlineButton{
		{{Text: "📝 New phrase", Data: "phrase:new"}},
	}
	return r.SendButtons(ctx, chatID, text, rows)
}

func (r *RealTelegramBotAdapter) handleSubscribeCommand(ctx context.Context, message *tgbotapi.Message) error {
	metrics.IncCommand("/subscribe", "ok")
	text, err := r.facade.HandleSubscribe(ctx, message.Chat.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("tg_id", message.Chat.ID).Msg("subscribe failed")
		text = "Something went wrong. Try again later."
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleUnsubscribeCommand(ctx context.Context, message *tgbotapi.Message) error {
	metrics.IncCommand("/unsubscribe", "ok")
	text, err := r.facade.HandleUnsubscribe(ctx, message.Chat.ID)
	if err != nil {
		r.log.Error().Err(err).Int64("tg_id", message.Chat.ID).Msg("unsubscribe failed")
		text = "Something went wrong. Try again later."
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

// handleSuggestCommand prompts the user; their next plain message is consumed
// by handlePlainText via the stored conversation state.
func (r *RealTelegramBotAdapter) handleSuggestCommand(ctx context.Context, message *tgbotapi.Message) error {
	metrics.IncCommand("/suggest", "ok")
	state := &repository.ConversationState{Step: repository.StepAwaitingSuggestion}
	if err := r.stateRepo.SetState(ctx, message.From.ID, state); err != nil {
		r.log.Error().Err(err).Int64("tg_id", message.From.ID).Msg("set conversation state failed")
		return r.SendMessage(ctx, message.Chat.ID, "Something went wrong. Try again later.")
	}
	return r.SendMessage(ctx, message.Chat.ID, r.facade.HandleSuggestPrompt(ctx))
}

func (r *RealTelegramBotAdapter) handleModerateCommand(ctx context.Context, message *tgbotapi.Message) error {
	pending, err := r.facade.ModerationQueue(ctx, message.From.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return r.SendMessage(ctx, message.Chat.ID, "This command is admin-only.")
		}
		r.log.Error().Err(err).Msg("list pending suggestions failed")
		return r.SendMessage(ctx, message.Chat.ID, "Something went wrong. Try again later.")
	}
	if len(pending) == 0 {
		return r.SendMessage(ctx, message.Chat.ID, "No suggested phrases.")
	}

	for _, s := range pending {
		rows := [][]adapter.InlineButton{{
			{Text: "✅ Approve", Data: approveCallback(s.ID)},
			{Text: "❌ Reject", Data: rejectCallback(s.ID)},
		}}
		if err := r.SendButtons(ctx, message.Chat.ID, application.FormatModerationItem(s), rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *RealTelegramBotAdapter) handleBulkAddCommand(ctx context.Context, message *tgbotapi.Message) error {
	state := &repository.ConversationState{Step: repository.StepAwaitingBulkAdd}
	if err := r.stateRepo.SetState(ctx, message.From.ID, state); err != nil {
		r.log.Error().Err(err).Int64("tg_id", message.From.ID).Msg("set conversation state failed")
		return r.SendMessage(ctx, message.Chat.ID, "Something went wrong. Try again later.")
	}
	return r.SendMessage(ctx, message.Chat.ID, r.facade.HandleBulkAddPrompt(ctx))
}

// handlePlainText completes a pending continuation, if any. Text arriving with
// no stored state is ignored.
func (r *RealTelegramBotAdapter) handlePlainText(ctx context.Context, message *tgbotapi.Message) error {
	if message.Text == "" {
		return nil
	}

	state, err := r.stateRepo.GetState(ctx, message.From.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	// The continuation is consumed exactly once, whatever the outcome.
	defer func() {
		if err := r.stateRepo.ClearState(ctx, message.From.ID); err != nil {
			r.log.Warn().Err(err).Int64("tg_id", message.From.ID).Msg("clear conversation state failed")
		}
	}()

	switch state.Step {
	case repository.StepAwaitingSuggestion:
		text, err := r.facade.HandleSuggestionText(ctx, message.From.ID, message.Text)
		if err != nil {
			r.log.Error().Err(err).Int64("tg_id", message.From.ID).Msg("suggestion submit failed")
			text = "Something went wrong. Try again later."
		}
		return r.SendMessage(ctx, message.Chat.ID, text)

	case repository.StepAwaitingBulkAdd:
		text, err := r.facade.HandleBulkAddText(ctx, message.From.ID, message.Text)
		if err != nil {
			if errors.Is(err, domain.ErrAccessDenied) {
				text = "This command is admin-only."
			} else {
				r.log.Error().Err(err).Int64("tg_id", message.From.ID).Msg("bulk add failed")
				text = "Something went wrong. Try again later."
			}
		}
		return r.SendMessage(ctx, message.Chat.ID, text)

	default:
		return nil
	}
}

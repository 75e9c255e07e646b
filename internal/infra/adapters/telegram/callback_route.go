package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
)

const (
	cbNewPhrase     = "phrase:new"
	cbApprovePrefix = "approve:"
	cbRejectPrefix  = "reject:"
)

func approveCallback(id int64) string { return cbApprovePrefix + strconv.FormatInt(id, 10) }
func rejectCallback(id int64) string  { return cbRejectPrefix + strconv.FormatInt(id, 10) }

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop telegram spinner when we return
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = query.From.ID
	}
	if chatID == 0 {
		return nil
	}

	data := strings.TrimSpace(query.Data)
	switch {
	case data == cbNewPhrase:
		return r.deliverRandomPhrase(ctx, chatID)

	case strings.HasPrefix(data, cbApprovePrefix):
		return r.handleDecisionQuery(ctx, query, model.ActionApprove, strings.TrimPrefix(data, cbApprovePrefix))

	case strings.HasPrefix(data, cbRejectPrefix):
		return r.handleDecisionQuery(ctx, query, model.ActionReject, strings.TrimPrefix(data, cbRejectPrefix))
	}
	return errors.New("unknown callback data: " + data)
}

// handleDecisionQuery applies an approve/reject button press. The original
// moderation message is edited in place with the outcome so the buttons
// disappear once a decision lands.
func (r *RealTelegramBotAdapter) handleDecisionQuery(ctx context.Context, query *tgbotapi.CallbackQuery, action model.DecisionAction, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return errors.New("malformed suggestion id in callback data")
	}

	notice, err := r.facade.HandleDecision(ctx, query.From.ID, action, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			// Denial goes to the pressing user only; the message stays intact.
			_, err := r.bot.Request(tgbotapi.NewCallback(query.ID, "Not for you 😎"))
			return err
		case errors.Is(err, domain.ErrAlreadyProcessed):
			notice = "This phrase was already processed."
		default:
			r.log.Error().Err(err).Int64("suggestion_id", id).Msg("moderation decision failed")
			notice = "Something went wrong. Try again later."
		}
	}

	if query.Message != nil && query.Message.Chat != nil {
		return r.editMessage(query.Message.Chat.ID, query.Message.MessageID, notice)
	}
	return r.SendMessage(ctx, query.From.ID, notice)
}

package application

import (
	"context"
	"fmt"
	"strings"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/usecase"
)

// BotFacade composes usecases into high-level bot commands.
// Facade methods return display strings so the Telegram adapter just forwards
// them to the chat; sentinel errors (access denied, already processed) are
// left to the adapter to render.
type BotFacade struct {
	PhraseUC     usecase.PhraseUseCase
	SuggestionUC usecase.SuggestionUseCase
	SubscriberUC usecase.SubscriberUseCase
}

func NewBotFacade(
	phraseUC usecase.PhraseUseCase,
	suggestionUC usecase.SuggestionUseCase,
	subscriberUC usecase.SubscriberUseCase,
) *BotFacade {
	return &BotFacade{
		PhraseUC:     phraseUC,
		SuggestionUC: suggestionUC,
		SubscriberUC: subscriberUC,
	}
}

// HandleStart returns the greeting shown for /start.
func (b *BotFacade) HandleStart(ctx context.Context) string {
	return "Hi! Tap the button below to get your phrase of the day."
}

// HandleRandomPhrase serves one random approved phrase, or the "none
// available" notice when the store is empty.
func (b *BotFacade) HandleRandomPhrase(ctx context.Context) (string, error) {
	p, err := b.PhraseUC.Random(ctx)
	if err != nil {
		if err == domain.ErrNoApprovedPhrases {
			return "No approved phrases yet 😔", nil
		}
		return "", fmt.Errorf("random phrase: %w", err)
	}
	return "✨ Phrase of the day:\n\n" + p.Text, nil
}

func (b *BotFacade) HandleSubscribe(ctx context.Context, tgID int64) (string, error) {
	if err := b.SubscriberUC.Subscribe(ctx, tgID); err != nil {
		return "", fmt.Errorf("subscribe: %w", err)
	}
	return "✅ You are subscribed to the daily phrase!", nil
}

func (b *BotFacade) HandleUnsubscribe(ctx context.Context, tgID int64) (string, error) {
	if err := b.SubscriberUC.Unsubscribe(ctx, tgID); err != nil {
		return "", fmt.Errorf("unsubscribe: %w", err)
	}
	return "❌ You are unsubscribed from the daily phrase.", nil
}

// HandleSuggestPrompt returns the prompt shown before awaiting the user's
// suggestion text.
func (b *BotFacade) HandleSuggestPrompt(ctx context.Context) string {
	return "Send me your phrase of the day:"
}

// HandleSuggestionText enqueues the user's next message verbatim.
func (b *BotFacade) HandleSuggestionText(ctx context.Context, tgID int64, text string) (string, error) {
	if _, err := b.SuggestionUC.Submit(ctx, tgID, text); err != nil {
		return "", fmt.Errorf("submit suggestion: %w", err)
	}
	return "Thanks! Your phrase was sent for moderation.", nil
}

// ModerationQueue lists all pending suggestions for the admin. The adapter
// renders one message per suggestion with approve/reject buttons.
func (b *BotFacade) ModerationQueue(ctx context.Context, actorID int64) ([]*model.Suggestion, error) {
	return b.SuggestionUC.ListPending(ctx, actorID)
}

// HandleDecision applies a moderation decision and returns the notice echoing
// the suggestion text. domain.ErrAccessDenied and domain.ErrAlreadyProcessed
// pass through for the adapter to render.
func (b *BotFacade) HandleDecision(ctx context.Context, actorID int64, action model.DecisionAction, id int64) (string, error) {
	text, err := b.SuggestionUC.Decide(ctx, actorID, action, id)
	if err != nil {
		return "", err
	}
	if action == model.ActionApprove {
		return "✅ Approved:\n" + text, nil
	}
	return "❌ Rejected:\n" + text, nil
}

// HandleBulkAddPrompt returns the prompt shown before awaiting the admin's
// newline-delimited phrase list.
func (b *BotFacade) HandleBulkAddPrompt(ctx context.Context) string {
	return "Send the list of phrases (one per line):"
}

// HandleBulkAddText imports one approved phrase per non-blank line.
func (b *BotFacade) HandleBulkAddText(ctx context.Context, actorID int64, block string) (string, error) {
	count, err := b.PhraseUC.BulkAdd(ctx, actorID, block)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Loaded %d phrases.", count), nil
}

// FormatModerationItem renders the message body shown above the decision
// buttons for one pending suggestion.
func FormatModerationItem(s *model.Suggestion) string {
	var sb strings.Builder
	sb.WriteString("Suggestion:\n")
	sb.WriteString(s.Text)
	return sb.String()
}

package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
	"telegram-phrase-bot/internal/infra/logging"
	"telegram-phrase-bot/internal/infra/metrics"
)

// Compile-time check
var _ SuggestionUseCase = (*suggestionUC)(nil)

// SuggestionUseCase owns the suggestion queue and the moderation workflow.
// A suggestion is pending from Submit until Decide removes it; a decision for
// an id no longer present yields domain.ErrAlreadyProcessed.
type SuggestionUseCase interface {
	Submit(ctx context.Context, userID int64, text string) (int64, error)
	ListPending(ctx context.Context, actorID int64) ([]*model.Suggestion, error)
	// Decide applies approve/reject. It returns the suggestion text so the
	// caller can echo it in the decision notice. Admin only; a non-admin actor
	// gets domain.ErrAccessDenied and no state changes.
	Decide(ctx context.Context, actorID int64, action model.DecisionAction, id int64) (string, error)
	CountPending(ctx context.Context) (int, error)
}

type suggestionUC struct {
	suggestions repository.SuggestionRepository
	phrases     repository.PhraseRepository
	tm          repository.TransactionManager
	adminID     int64
	log         *zerolog.Logger
}

func NewSuggestionUseCase(
	suggestions repository.SuggestionRepository,
	phrases repository.PhraseRepository,
	tm repository.TransactionManager,
	adminID int64,
	logger *zerolog.Logger,
) SuggestionUseCase {
	l := logger.With().Str("component", "SuggestionUC").Logger()
	return &suggestionUC{
		suggestions: suggestions,
		phrases:     phrases,
		tm:          tm,
		adminID:     adminID,
		log:         &l,
	}
}

func (uc *suggestionUC) Submit(ctx context.Context, userID int64, text string) (int64, error) {
	s, err := model.NewSuggestion(userID, text)
	if err != nil {
		return 0, err
	}
	id, err := uc.suggestions.Add(ctx, repository.NoTX, s)
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("suggestion_id", id).Int64("user_id", userID).Msg("suggestion submitted")
	return id, nil
}

func (uc *suggestionUC) ListPending(ctx context.Context, actorID int64) ([]*model.Suggestion, error) {
	if actorID != uc.adminID {
		return nil, domain.ErrAccessDenied
	}
	return uc.suggestions.ListPending(ctx, repository.NoTX)
}

func (uc *suggestionUC) Decide(ctx context.Context, actorID int64, action model.DecisionAction, id int64) (string, error) {
	defer logging.TraceDuration(uc.log, "SuggestionUC.Decide")()

	if actorID != uc.adminID {
		metrics.IncModerationDecision(string(action), "unauthorized")
		return "", domain.ErrAccessDenied
	}
	if !action.Valid() {
		return "", domain.ErrInvalidArgument
	}

	var text string
	err := uc.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		s, err := uc.suggestions.FindByID(ctx, tx, id)
		if err != nil {
			if err == domain.ErrNotFound {
				return domain.ErrAlreadyProcessed
			}
			return err
		}
		text = s.Text

		if action == model.ActionApprove {
			p, err := model.NewPhrase(s.Text, true)
			if err != nil {
				return err
			}
			if _, err := uc.phrases.Add(ctx, tx, p); err != nil {
				return err
			}
		}
		return uc.suggestions.Delete(ctx, tx, id)
	})
	if err != nil {
		if err == domain.ErrAlreadyProcessed {
			metrics.IncModerationDecision(string(action), "already_processed")
		}
		return "", err
	}

	metrics.IncModerationDecision(string(action), "applied")
	uc.log.Info().
		Int64("suggestion_id", id).
		Str("action", string(action)).
		Msg("moderation decision applied")
	return text, nil
}

func (uc *suggestionUC) CountPending(ctx context.Context) (int, error) {
	return uc.suggestions.Count(ctx, repository.NoTX)
}

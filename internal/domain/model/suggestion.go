package model

import (
	"time"

	"telegram-phrase-bot/internal/domain"
)

// Suggestion is a user-submitted candidate phrase pending moderation.
// The text is stored verbatim, exactly as the user sent it.
type Suggestion struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}

// NewSuggestion validates and constructs a pending suggestion.
func NewSuggestion(userID int64, text string) (*Suggestion, error) {
	if userID == 0 || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Suggestion{
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// DecisionAction tags a moderation decision.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

func (a DecisionAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

package repository

import (
	"context"
)

// ConversationStep tags what the bot is waiting for from a user.
type ConversationStep string

const (
	StepAwaitingSuggestion ConversationStep = "awaiting_suggestion"
	StepAwaitingBulkAdd    ConversationStep = "awaiting_bulk_add"
)

// ConversationState holds a user's pending continuation: the bot prompted the
// user and the next plain message from them completes the flow.
type ConversationState struct {
	Step ConversationStep `json:"step"`
}

// StateRepository is the port for managing per-user conversational state.
// GetState returns domain.ErrNotFound when no continuation is pending.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}

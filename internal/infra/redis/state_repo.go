package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo manages user conversational state in Redis. A pending
// continuation (suggest / bulkadd prompt) lives until the user answers or the
// TTL lapses; after expiry the next plain message is treated as ordinary.
type StateRepo struct {
	client *redClient
	ttl    time.Duration
}

func NewStateRepo(client *redClient, ttl time.Duration) repository.StateRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StateRepo{client: client, ttl: ttl}
}

func (s *StateRepo) stateKey(tgID int64) string {
	return fmt.Sprintf("conv_state:%d", tgID)
}

func (s *StateRepo) SetState(ctx context.Context, tgID int64, state *repository.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(tgID), data, s.ttl)
}

func (s *StateRepo) GetState(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	data, err := s.client.Get(ctx, s.stateKey(tgID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var state repository.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *StateRepo) ClearState(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.stateKey(tgID))
}

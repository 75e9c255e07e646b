//go:build !integration

package usecase_test

import (
	"context"
	"math/rand"
	"os"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/adapter"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return &l
}

// memPhraseRepo is a small in-memory implementation used by unit tests.
type memPhraseRepo struct {
	mu     sync.RWMutex
	rows   map[int64]*model.Phrase
	nextID int64
	addErr error // used by tests to simulate insert failures
}

func newMemPhraseRepo() *memPhraseRepo {
	return &memPhraseRepo{rows: make(map[int64]*model.Phrase), nextID: 1}
}

func (m *memPhraseRepo) Add(ctx context.Context, tx repository.Tx, p *model.Phrase) (int64, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = m.nextID
	m.nextID++
	m.rows[cp.ID] = &cp
	p.ID = cp.ID
	return cp.ID, nil
}

func (m *memPhraseRepo) RandomApproved(ctx context.Context, tx repository.Tx) (*model.Phrase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var approved []*model.Phrase
	for _, p := range m.rows {
		if p.Approved {
			approved = append(approved, p)
		}
	}
	if len(approved) == 0 {
		return nil, domain.ErrNoApprovedPhrases
	}
	cp := *approved[rand.Intn(len(approved))]
	return &cp, nil
}

func (m *memPhraseRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Phrase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Phrase
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.rows[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPhraseRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// texts returns all stored texts, for containment assertions.
func (m *memPhraseRepo) texts() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]bool, len(m.rows))
	for _, p := range m.rows {
		out[p.Text] = true
	}
	return out
}

// memSuggestionRepo provides an in-memory pending queue for tests.
type memSuggestionRepo struct {
	mu     sync.RWMutex
	rows   map[int64]*model.Suggestion
	order  []int64
	nextID int64
}

func newMemSuggestionRepo() *memSuggestionRepo {
	return &memSuggestionRepo{rows: make(map[int64]*model.Suggestion), nextID: 1}
}

func (m *memSuggestionRepo) Add(ctx context.Context, tx repository.Tx, s *model.Suggestion) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.ID = m.nextID
	m.nextID++
	m.rows[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	s.ID = cp.ID
	return cp.ID, nil
}

func (m *memSuggestionRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.Suggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Suggestion
	for _, id := range m.order {
		if s, ok := m.rows[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSuggestionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Suggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSuggestionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memSuggestionRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// memSubscriberRepo keys rows by Telegram id; Add is naturally idempotent.
type memSubscriberRepo struct {
	mu   sync.RWMutex
	rows map[int64]*model.Subscriber
}

func newMemSubscriberRepo() *memSubscriberRepo {
	return &memSubscriberRepo{rows: make(map[int64]*model.Subscriber)}
}

func (m *memSubscriberRepo) Add(ctx context.Context, tx repository.Tx, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[tgID]; ok {
		return nil
	}
	m.rows[tgID] = &model.Subscriber{TelegramID: tgID}
	return nil
}

func (m *memSubscriberRepo) Remove(ctx context.Context, tx repository.Tx, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, tgID)
	return nil
}

func (m *memSubscriberRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscriber
	for _, s := range m.rows {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// memTxManager runs the callback without a real transaction; the in-memory
// repos ignore the tx handle.
type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// mockBot records sends and can fail selectively per recipient.
type mockBot struct {
	mu      sync.Mutex
	sent    map[int64][]string
	failFor map[int64]error
}

func newMockBot() *mockBot {
	return &mockBot{sent: make(map[int64][]string), failFor: make(map[int64]error)}
}

func (b *mockBot) SendMessage(ctx context.Context, tgID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err, ok := b.failFor[tgID]; ok {
		return err
	}
	b.sent[tgID] = append(b.sent[tgID], text)
	return nil
}

func (b *mockBot) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	return b.SendMessage(ctx, tgID, text)
}

func (b *mockBot) sentTo(tgID int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.sent[tgID]...)
}

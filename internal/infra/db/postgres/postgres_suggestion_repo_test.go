//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v4"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

func TestSuggestionRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewPostgresSuggestionRepo(testPool)
	ctx := context.Background()
	cleanup(t)

	first, err := model.NewSuggestion(100, "First idea")
	if err != nil {
		t.Fatalf("model.NewSuggestion() failed: %v", err)
	}
	second, _ := model.NewSuggestion(200, "Second idea")

	t.Run("should add and find a suggestion", func(t *testing.T) {
		id, err := repo.Add(ctx, repository.NoTX, first)
		if err != nil {
			t.Fatalf("Failed to add suggestion: %v", err)
		}
		if _, err := repo.Add(ctx, repository.NoTX, second); err != nil {
			t.Fatalf("Failed to add second suggestion: %v", err)
		}

		found, err := repo.FindByID(ctx, repository.NoTX, id)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if found.UserID != 100 || found.Text != "First idea" {
			t.Errorf("mismatch in retrieved suggestion, got user %d text %q", found.UserID, found.Text)
		}
	})

	t.Run("should list pending in insertion order", func(t *testing.T) {
		pending, err := repo.ListPending(ctx, repository.NoTX)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 2 {
			t.Fatalf("expected 2 pending suggestions, got %d", len(pending))
		}
		if pending[0].Text != "First idea" || pending[1].Text != "Second idea" {
			t.Errorf("pending queue out of order: %q, %q", pending[0].Text, pending[1].Text)
		}
	})

	t.Run("should delete a suggestion", func(t *testing.T) {
		if err := repo.Delete(ctx, repository.NoTX, first.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err := repo.FindByID(ctx, repository.NoTX, first.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for deleted suggestion, got: %v", err)
		}

		n, _ := repo.Count(ctx, repository.NoTX)
		if n != 1 {
			t.Errorf("expected 1 suggestion left, got %d", n)
		}
	})

	t.Run("should delete atomically with a phrase insert", func(t *testing.T) {
		// The approval flow inserts the phrase and removes the suggestion in
		// one transaction; both sides must land or neither does.
		phraseRepo := NewPostgresPhraseRepo(testPool)
		tm := NewTxManager(testPool)

		err := tm.WithTx(ctx, pgx.TxOptions{}, func(txCtx context.Context, tx repository.Tx) error {
			p, _ := model.NewPhrase(second.Text, true)
			if _, err := phraseRepo.Add(txCtx, tx, p); err != nil {
				return err
			}
			return repo.Delete(txCtx, tx, second.ID)
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}

		if _, err := repo.FindByID(ctx, repository.NoTX, second.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected suggestion gone after approval, got: %v", err)
		}
		if n, _ := phraseRepo.Count(ctx, repository.NoTX); n == 0 {
			t.Error("expected approved phrase to be stored")
		}
	})
}

//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

func TestPhraseRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewPostgresPhraseRepo(testPool)
	ctx := context.Background()
	cleanup(t)

	t.Run("should report empty store", func(t *testing.T) {
		_, err := repo.RandomApproved(ctx, repository.NoTX)
		if !errors.Is(err, domain.ErrNoApprovedPhrases) {
			t.Fatalf("expected ErrNoApprovedPhrases on empty table, got: %v", err)
		}
	})

	t.Run("should insert and count phrases", func(t *testing.T) {
		for _, text := range []string{"Carpe diem", "Festina lente", "Memento mori"} {
			p, err := model.NewPhrase(text, true)
			if err != nil {
				t.Fatalf("model.NewPhrase() failed: %v", err)
			}
			id, err := repo.Add(ctx, repository.NoTX, p)
			if err != nil {
				t.Fatalf("Failed to add phrase: %v", err)
			}
			if id == 0 || p.ID != id {
				t.Errorf("expected generated id to be set on the phrase, got id=%d p.ID=%d", id, p.ID)
			}
		}

		n, err := repo.Count(ctx, repository.NoTX)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 phrases, got %d", n)
		}
	})

	t.Run("should only draw approved phrases", func(t *testing.T) {
		hidden, _ := model.NewPhrase("Unapproved one", false)
		if _, err := repo.Add(ctx, repository.NoTX, hidden); err != nil {
			t.Fatalf("Failed to add unapproved phrase: %v", err)
		}

		for i := 0; i < 20; i++ {
			p, err := repo.RandomApproved(ctx, repository.NoTX)
			if err != nil {
				t.Fatalf("RandomApproved failed: %v", err)
			}
			if p.Text == hidden.Text {
				t.Fatal("drew an unapproved phrase")
			}
		}
	})

	t.Run("should list phrases with paging", func(t *testing.T) {
		page, err := repo.List(ctx, repository.NoTX, 1, 2)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(page) != 2 {
			t.Fatalf("expected page of 2, got %d", len(page))
		}
		if page[0].ID >= page[1].ID {
			t.Errorf("expected id-ordered page, got ids %d, %d", page[0].ID, page[1].ID)
		}
	})
}

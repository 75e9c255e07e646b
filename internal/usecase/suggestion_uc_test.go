//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/usecase"
)

func newSuggestionFixture() (usecase.SuggestionUseCase, *memSuggestionRepo, *memPhraseRepo) {
	suggestions := newMemSuggestionRepo()
	phrases := newMemPhraseRepo()
	uc := usecase.NewSuggestionUseCase(suggestions, phrases, memTxManager{}, adminID, newTestLogger())
	return uc, suggestions, phrases
}

func TestSuggestionUseCase_Submit(t *testing.T) {
	ctx := context.Background()
	uc, suggestions, _ := newSuggestionFixture()

	id, err := uc.Submit(ctx, 1001, "  verbatim text  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s, err := suggestions.FindByID(ctx, nil, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if s.Text != "  verbatim text  " {
		t.Errorf("suggestion text was not stored verbatim: %q", s.Text)
	}
	if s.UserID != 1001 {
		t.Errorf("expected user id 1001, got %d", s.UserID)
	}
}

func TestSuggestionUseCase_ListPending(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newSuggestionFixture()

	t.Run("non-admin denied", func(t *testing.T) {
		if _, err := uc.ListPending(ctx, adminID+1); !errors.Is(err, domain.ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}
	})

	t.Run("insertion order", func(t *testing.T) {
		for _, text := range []string{"first", "second", "third"} {
			if _, err := uc.Submit(ctx, 1, text); err != nil {
				t.Fatalf("Submit(%q): %v", text, err)
			}
		}
		pending, err := uc.ListPending(ctx, adminID)
		if err != nil {
			t.Fatalf("ListPending: %v", err)
		}
		got := make([]string, 0, len(pending))
		for _, s := range pending {
			got = append(got, s.Text)
		}
		want := []string{"first", "second", "third"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})
}

func TestSuggestionUseCase_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve moves text into phrase store and empties queue", func(t *testing.T) {
		uc, suggestions, phrases := newSuggestionFixture()
		id, _ := uc.Submit(ctx, 1, "wisdom")

		text, err := uc.Decide(ctx, adminID, model.ActionApprove, id)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if text != "wisdom" {
			t.Errorf("expected echoed text %q, got %q", "wisdom", text)
		}
		if _, err := suggestions.FindByID(ctx, nil, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("suggestion should be gone after approval, got %v", err)
		}
		if !phrases.texts()["wisdom"] {
			t.Errorf("approved text missing from phrase store: %v", phrases.texts())
		}
	})

	t.Run("reject deletes without creating a phrase", func(t *testing.T) {
		uc, suggestions, phrases := newSuggestionFixture()
		id, _ := uc.Submit(ctx, 1, "nonsense")

		if _, err := uc.Decide(ctx, adminID, model.ActionReject, id); err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if _, err := suggestions.FindByID(ctx, nil, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("suggestion should be gone after rejection, got %v", err)
		}
		if n, _ := phrases.Count(ctx, nil); n != 0 {
			t.Errorf("reject must not create phrases, store has %d", n)
		}
	})

	t.Run("second decision reports already processed", func(t *testing.T) {
		uc, _, phrases := newSuggestionFixture()
		id, _ := uc.Submit(ctx, 1, "once")

		if _, err := uc.Decide(ctx, adminID, model.ActionApprove, id); err != nil {
			t.Fatalf("first Decide: %v", err)
		}
		if _, err := uc.Decide(ctx, adminID, model.ActionApprove, id); !errors.Is(err, domain.ErrAlreadyProcessed) {
			t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
		}
		// No duplicate phrase from the second call.
		if n, _ := phrases.Count(ctx, nil); n != 1 {
			t.Errorf("expected 1 phrase, got %d", n)
		}
	})

	t.Run("non-admin decision never mutates state", func(t *testing.T) {
		uc, suggestions, phrases := newSuggestionFixture()
		id, _ := uc.Submit(ctx, 1, "guarded")

		for _, action := range []model.DecisionAction{model.ActionApprove, model.ActionReject} {
			if _, err := uc.Decide(ctx, adminID+7, action, id); !errors.Is(err, domain.ErrAccessDenied) {
				t.Fatalf("action %s: expected ErrAccessDenied, got %v", action, err)
			}
		}
		if _, err := suggestions.FindByID(ctx, nil, id); err != nil {
			t.Errorf("suggestion must remain pending, got %v", err)
		}
		if n, _ := phrases.Count(ctx, nil); n != 0 {
			t.Errorf("phrase store must stay empty, got %d", n)
		}
	})

	t.Run("invalid action rejected", func(t *testing.T) {
		uc, _, _ := newSuggestionFixture()
		id, _ := uc.Submit(ctx, 1, "whatever")
		if _, err := uc.Decide(ctx, adminID, model.DecisionAction("purge"), id); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

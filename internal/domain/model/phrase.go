package model

import (
	"time"

	"telegram-phrase-bot/internal/domain"
)

// Phrase is an approved text snippet eligible for delivery.
// The Approved flag defaults to true; unapproved rows are never served.
type Phrase struct {
	ID        int64
	Text      string
	Approved  bool
	CreatedAt time.Time
}

func (p *Phrase) IsZero() bool { return p == nil || p.ID == 0 }

// NewPhrase validates and constructs a phrase. The ID is assigned by storage.
func NewPhrase(text string, approved bool) (*Phrase, error) {
	if text == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Phrase{
		Text:      text,
		Approved:  approved,
		CreatedAt: time.Now(),
	}, nil
}

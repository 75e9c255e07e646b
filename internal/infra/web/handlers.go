package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type statsResponse struct {
	Phrases            int `json:"phrases"`
	PendingSuggestions int `json:"pending_suggestions"`
	Subscribers        int `json:"subscribers"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	phrases, err := s.phraseUC.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("count phrases failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pending, err := s.suggestionUC.CountPending(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("count suggestions failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	subs, err := s.subscriberUC.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("count subscribers failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Phrases:            phrases,
		PendingSuggestions: pending,
		Subscribers:        subs,
	})
}

type phraseItem struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handlePhrases(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	phrases, err := s.phraseUC.List(r.Context(), offset, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list phrases failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]phraseItem, 0, len(phrases))
	for _, p := range phrases {
		items = append(items, phraseItem{
			ID:        p.ID,
			Text:      p.Text,
			Approved:  p.Approved,
			CreatedAt: p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/usecase"
)

// Server exposes a small read-only admin API plus health and metrics.
type Server struct {
	phraseUC     usecase.PhraseUseCase
	suggestionUC usecase.SuggestionUseCase
	subscriberUC usecase.SubscriberUseCase
	apiKey       string
	log          *zerolog.Logger
}

func NewServer(
	phraseUC usecase.PhraseUseCase,
	suggestionUC usecase.SuggestionUseCase,
	subscriberUC usecase.SubscriberUseCase,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "AdminAPI").Logger()
	return &Server{
		phraseUC:     phraseUC,
		suggestionUC: suggestionUC,
		subscriberUC: subscriberUC,
		apiKey:       apiKey,
		log:          &l,
	}
}

// Router builds the chi router. Health and metrics are open; everything under
// /api/v1 sits behind the bearer-token middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/stats", s.handleStats)
		r.Get("/phrases", s.handlePhrases)
	})

	return r
}

// authMiddleware provides simple Bearer token authentication for the admin API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}
		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

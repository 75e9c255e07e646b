package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/usecase"
)

// BroadcastWorker fires the daily broadcast at a fixed wall-clock hh:mm.
// It runs independently of command dispatch and shares only the persisted
// stores with it.
type BroadcastWorker struct {
	hour   int
	minute int
	uc     usecase.BroadcastUseCase
	log    *zerolog.Logger

	now func() time.Time // injectable clock for tests
}

func NewBroadcastWorker(hour, minute int, uc usecase.BroadcastUseCase, logger *zerolog.Logger) *BroadcastWorker {
	l := logger.With().Str("component", "BroadcastWorker").Logger()
	return &BroadcastWorker{
		hour:   hour,
		minute: minute,
		uc:     uc,
		log:    &l,
		now:    time.Now,
	}
}

func (w *BroadcastWorker) Run(ctx context.Context) error {
	w.log.Info().Int("hour", w.hour).Int("minute", w.minute).Msg("starting broadcast worker")

	for {
		next := w.nextFiring(w.now())
		timer := time.NewTimer(next.Sub(w.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info().Msg("stopping broadcast worker")
			return ctx.Err()
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		delivered, err := w.uc.SendDaily(runCtx)
		cancel()
		if err != nil {
			w.log.Error().Err(err).Msg("daily broadcast failed")
			continue
		}
		if delivered > 0 {
			w.log.Info().Int("delivered", delivered).Msg("daily broadcast delivered")
		}
	}
}

// nextFiring returns the next wall-clock occurrence of hh:mm strictly after
// now, in now's location.
func (w *BroadcastWorker) nextFiring(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, w.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

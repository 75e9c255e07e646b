package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/ports/adapter"
	"telegram-phrase-bot/internal/domain/ports/repository"
	"telegram-phrase-bot/internal/infra/logging"
	"telegram-phrase-bot/internal/infra/metrics"
	"telegram-phrase-bot/internal/infra/worker"
)

// Compile-time check
var _ BroadcastUseCase = (*broadcastUC)(nil)

// BroadcastUseCase pushes one random approved phrase to every subscriber.
type BroadcastUseCase interface {
	// SendDaily returns the number of successful deliveries. An empty phrase
	// store is a silent no-op (0, nil). A failed delivery to one subscriber is
	// logged and skipped; the rest still receive the phrase. No retries.
	SendDaily(ctx context.Context) (int, error)
}

type broadcastUC struct {
	phrases     repository.PhraseRepository
	subscribers repository.SubscriberRepository
	bot         adapter.TelegramBotAdapter
	workerPool  *worker.Pool
	log         *zerolog.Logger
}

func NewBroadcastUseCase(
	phrases repository.PhraseRepository,
	subscribers repository.SubscriberRepository,
	bot adapter.TelegramBotAdapter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) BroadcastUseCase {
	l := logger.With().Str("component", "BroadcastUC").Logger()
	return &broadcastUC{
		phrases:     phrases,
		subscribers: subscribers,
		bot:         bot,
		workerPool:  pool,
		log:         &l,
	}
}

func (uc *broadcastUC) SendDaily(ctx context.Context) (int, error) {
	defer logging.TraceDuration(uc.log, "BroadcastUC.SendDaily")()

	runID := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
	log := uc.log.With().Str("run_id", runID).Logger()

	phrase, err := uc.phrases.RandomApproved(ctx, repository.NoTX)
	if err != nil {
		if err == domain.ErrNoApprovedPhrases {
			metrics.IncBroadcastRun("empty")
			log.Debug().Msg("no approved phrases; skipping broadcast")
			return 0, nil
		}
		metrics.IncBroadcastRun("error")
		return 0, err
	}

	subs, err := uc.subscribers.List(ctx, repository.NoTX)
	if err != nil {
		metrics.IncBroadcastRun("error")
		log.Error().Err(err).Msg("failed to list subscribers")
		return 0, err
	}
	if len(subs) == 0 {
		metrics.IncBroadcastRun("empty")
		return 0, nil
	}

	message := "🌞 Phrase of the day:\n\n" + phrase.Text
	log.Info().Int("subscriber_count", len(subs)).Int64("phrase_id", phrase.ID).Msg("starting daily broadcast")

	// Throttle to respect Telegram's API limits (approx. 30 messages/sec)
	throttle := time.NewTicker(time.Second / 25)
	defer throttle.Stop()

	var sent int64
	var wg sync.WaitGroup
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return int(atomic.LoadInt64(&sent)), ctx.Err()
		case <-throttle.C:
		}

		task := uc.sendTask(sub.TelegramID, message, &sent, &wg, &log)
		wg.Add(1)
		if err := uc.workerPool.Submit(task); err != nil {
			// queue saturated; deliver inline rather than drop the subscriber
			_ = task(ctx)
		}
	}
	wg.Wait()

	metrics.IncBroadcastRun("sent")
	delivered := int(atomic.LoadInt64(&sent))
	log.Info().Int("delivered", delivered).Int("total", len(subs)).Msg("daily broadcast finished")
	return delivered, nil
}

// sendTask creates a closure for the worker pool to execute. Errors are logged
// and swallowed so one unreachable subscriber never aborts the run.
func (uc *broadcastUC) sendTask(tgID int64, message string, sent *int64, wg *sync.WaitGroup, log *zerolog.Logger) worker.Task {
	return func(ctx context.Context) error {
		defer wg.Done()
		if err := uc.bot.SendMessage(ctx, tgID, message); err != nil {
			metrics.IncBroadcastMessage("failed")
			log.Warn().Err(err).Int64("tg_id", tgID).Msg("failed to deliver daily phrase")
			return nil
		}
		metrics.IncBroadcastMessage("sent")
		atomic.AddInt64(sent, 1)
		return nil
	}
}

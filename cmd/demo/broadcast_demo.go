package main

import (
	"context"
	"flag"
	"log"
	"time"

	"telegram-phrase-bot/internal/config"
	infraTelegram "telegram-phrase-bot/internal/infra/adapters/telegram"
	pg "telegram-phrase-bot/internal/infra/db/postgres"
	"telegram-phrase-bot/internal/infra/logging"
	"telegram-phrase-bot/internal/infra/worker"
	"telegram-phrase-bot/internal/usecase"
)

// Dry run of the daily broadcast against the configured database. Deliveries
// go through the noop adapter, so nothing reaches Telegram.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	phraseRepo := pg.NewPostgresPhraseRepo(pool)
	subscriberRepo := pg.NewPostgresSubscriberRepo(pool)

	workerPool := worker.NewPool(4)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	bot := infraTelegram.NewNoopBotAdapter()
	broadcastUC := usecase.NewBroadcastUseCase(phraseRepo, subscriberRepo, bot, workerPool, logger)

	delivered, err := broadcastUC.SendDaily(ctx)
	if err != nil {
		log.Fatalf("broadcast: %v", err)
	}
	log.Printf("Dry run finished: %d deliveries.", delivered)
}

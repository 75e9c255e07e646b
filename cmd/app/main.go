package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"telegram-phrase-bot/internal/application"
	"telegram-phrase-bot/internal/config"
	tele "telegram-phrase-bot/internal/infra/adapters/telegram"
	pg "telegram-phrase-bot/internal/infra/db/postgres"
	"telegram-phrase-bot/internal/infra/logging"
	"telegram-phrase-bot/internal/infra/metrics"
	red "telegram-phrase-bot/internal/infra/redis"
	"telegram-phrase-bot/internal/infra/sched"
	"telegram-phrase-bot/internal/infra/web"
	"telegram-phrase-bot/internal/infra/worker"
	"telegram-phrase-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	stateRepo := red.NewStateRepo(redisClient, cfg.Redis.StateTTL)

	// ---- Repositories ----
	phraseRepo := pg.NewPostgresPhraseRepo(pool)
	suggestionRepo := pg.NewPostgresSuggestionRepo(pool)
	subscriberRepo := pg.NewPostgresSubscriberRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Use cases ----
	phraseUC := usecase.NewPhraseUseCase(phraseRepo, cfg.Bot.AdminID, logger)
	suggestionUC := usecase.NewSuggestionUseCase(suggestionRepo, phraseRepo, txManager, cfg.Bot.AdminID, logger)
	subscriberUC := usecase.NewSubscriberUseCase(subscriberRepo, logger)

	// ---- Facade + Telegram ----
	facade := application.NewBotFacade(phraseUC, suggestionUC, subscriberUC)
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, stateRepo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Daily broadcast ----
	pool2 := worker.NewPool(4)
	pool2.Start(ctx)
	defer pool2.Stop()
	broadcastUC := usecase.NewBroadcastUseCase(phraseRepo, subscriberRepo, botAdapter, pool2, logger)
	broadcastWorker := sched.NewBroadcastWorker(cfg.Broadcast.Hour, cfg.Broadcast.Minute, broadcastUC, logger)
	go func() { _ = broadcastWorker.Run(ctx) }()

	// ---- Admin HTTP API ----
	adminSrv := web.NewServer(phraseUC, suggestionUC, subscriberUC, cfg.Admin.APIKey, logger)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: adminSrv.Router(),
	}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("admin API listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin API server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = httpServer.Shutdown(context.Background())
}

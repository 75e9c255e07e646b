package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"telegram-phrase-bot/internal/config"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
	pg "telegram-phrase-bot/internal/infra/db/postgres"
)

// Loads a newline-delimited phrase file into the store. Blank lines are
// skipped, matching the bot's /bulkadd behavior.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	filePath := flag.String("file", "phrases.txt", "newline-delimited phrases file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	b, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read phrases file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	phraseRepo := pg.NewPostgresPhraseRepo(pool)

	count := 0
	for _, line := range strings.Split(string(b), "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		p, err := model.NewPhrase(clean, true)
		if err != nil {
			log.Fatalf("phrase %q: %v", clean, err)
		}
		if _, err := phraseRepo.Add(ctx, repository.NoTX, p); err != nil {
			log.Fatalf("insert phrase %q: %v", clean, err)
		}
		count++
	}

	fmt.Printf("✅ Seeded %d phrases.\n", count)
}

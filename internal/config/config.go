package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	AdminID int64  `yaml:"admin_id"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StateTTL time.Duration `yaml:"state_ttl"`
}

// BroadcastConfig fixes the daily send at a wall-clock hour:minute.
type BroadcastConfig struct {
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

type AdminConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Admin     AdminConfig     `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path and applies defaults and validation.
// BOT_TOKEN, ADMIN_ID and DATABASE_URL environment variables override the file
// so deployments can keep secrets out of it.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if tok := os.Getenv("BOT_TOKEN"); tok != "" {
		cfg.Bot.Token = tok
	}
	if raw := os.Getenv("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_ID: %w", err)
		}
		cfg.Bot.AdminID = id
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.URL = dsn
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Broadcast.Hour == 0 && cfg.Broadcast.Minute == 0 {
		cfg.Broadcast.Hour = 12
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8091
	}
	cfg.Redis.StateTTL = normalizeTTL(cfg.Redis.StateTTL)

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Bot.AdminID == 0 {
		return nil, errors.New("bot.admin_id is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Broadcast.Hour < 0 || cfg.Broadcast.Hour > 23 || cfg.Broadcast.Minute < 0 || cfg.Broadcast.Minute > 59 {
		return nil, errors.New("broadcast.hour/minute out of range")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 15 * time.Minute
	}
	return d
}

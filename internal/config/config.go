package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	Disabled bool   `yaml:"disabled" env:"DISABLE_TELEGRAM_BOT"`
	Workers  int    `yaml:"workers" env:"BOT_WORKERS"` // polling workers
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // trace|debug|info|warn|error
	Format string `yaml:"format" env:"LOG_FORMAT"` // json|console
}

type ServerConfig struct {
	Port int `yaml:"port" env:"PORT"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url" env:"DATABASE_URL"`
	MaxConns       int32         `yaml:"max_conns" env:"DATABASE_MAX_CONNS"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout" env:"DATABASE_ACQUIRE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"DATABASE_IDLE_TIMEOUT"`
}

type RedisConfig struct {
	URL      string `yaml:"url" env:"REDIS_URL"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-" env:"-"`
}

// LoadConfig reads the YAML file at path (a missing file is fine, env-only
// deployments carry no file at all), then lets environment variables
// override any value.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
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
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Database.AcquireTimeout <= 0 {
		cfg.Database.AcquireTimeout = 10 * time.Second
	}
	if cfg.Database.IdleTimeout <= 0 {
		cfg.Database.IdleTimeout = 30 * time.Second
	}

	// Minimal validation. The bot token is optional: without one the
	// service still serves the read API.
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required (set DATABASE_URL)")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

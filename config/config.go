// Package config loads service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full service configuration. Variables are prefixed with
// BANKIST_, e.g. BANKIST_LISTEN_ADDR.
type Config struct {
	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	SessionDuration   time.Duration `envconfig:"SESSION_DURATION" default:"300s"`
	TickInterval      time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
	LoanApprovalDelay time.Duration `envconfig:"LOAN_APPROVAL_DELAY" default:"2500ms"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the .env file when present and then the environment.
func Load(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg Config
	if err := envconfig.Process("bankist", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level maps the configured log level string onto slog. Unknown values
// fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBackendURL = "http://localhost:8000"
	defaultTimeout    = 30 * time.Second
)

// Config holds everything the front-end needs to reach the backend.
type Config struct {
	BackendURL string
	Timeout    time.Duration
	Simulate   bool
	LogLevel   slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL: defaultBackendURL,
		Timeout:    defaultTimeout,
		LogLevel:   slog.LevelWarn,
	}

	if v := os.Getenv("PRICEPULSE_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}

	if v := os.Getenv("PRICEPULSE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PRICEPULSE_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv("PRICEPULSE_SIMULATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PRICEPULSE_SIMULATE %q: %w", v, err)
		}
		cfg.Simulate = b
	}

	if v := os.Getenv("PRICEPULSE_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid PRICEPULSE_LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

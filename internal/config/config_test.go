package config_test

import (
	"log/slog"
	"testing"
	"time"

	"pricepulse/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Simulate {
		t.Error("Simulate should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PRICEPULSE_BACKEND_URL", "http://demo:9000")
	t.Setenv("PRICEPULSE_TIMEOUT", "90s")
	t.Setenv("PRICEPULSE_SIMULATE", "true")
	t.Setenv("PRICEPULSE_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendURL != "http://demo:9000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if !cfg.Simulate {
		t.Error("Simulate should be true")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PRICEPULSE_TIMEOUT", "soon")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for bad timeout")
	}
	t.Setenv("PRICEPULSE_TIMEOUT", "10s")

	t.Setenv("PRICEPULSE_SIMULATE", "maybe")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for bad simulate flag")
	}
}

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.SetDefaults()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != "10s" {
		t.Errorf("Timeout = %q, want 10s", cfg.API.Timeout)
	}
	if cfg.Retry.ReadAttempts != 2 {
		t.Errorf("ReadAttempts = %d, want 2", cfg.Retry.ReadAttempts)
	}
	if cfg.Retry.BaseDelay != "1s" {
		t.Errorf("BaseDelay = %q, want 1s", cfg.Retry.BaseDelay)
	}
	if cfg.Retry.MaxDelay != "30s" {
		t.Errorf("MaxDelay = %q, want 30s", cfg.Retry.MaxDelay)
	}
	if cfg.Cache.FreshFor != "5m" {
		t.Errorf("FreshFor = %q, want 5m", cfg.Cache.FreshFor)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Session.Path == "" {
		t.Error("Session.Path default is empty")
	}
}

func TestConfig_SetDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		API:      APIConfig{BaseURL: "https://api.example.com/api", Timeout: "3s"},
		LogLevel: "debug",
	}
	cfg.SetDefaults()

	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("BaseURL overwritten: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "3s" {
		t.Errorf("Timeout overwritten: %q", cfg.API.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel overwritten: %q", cfg.LogLevel)
	}
}

func TestConfig_DurationAccessors(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.SetDefaults()

	if got := cfg.RequestTimeout(); got != 10*time.Second {
		t.Errorf("RequestTimeout() = %v, want 10s", got)
	}
	if got := cfg.RetryBaseDelay(); got != time.Second {
		t.Errorf("RetryBaseDelay() = %v, want 1s", got)
	}
	if got := cfg.RetryMaxDelay(); got != 30*time.Second {
		t.Errorf("RetryMaxDelay() = %v, want 30s", got)
	}
	if got := cfg.CacheFreshFor(); got != 5*time.Minute {
		t.Errorf("CacheFreshFor() = %v, want 5m", got)
	}
}

func TestConfig_CacheDisabledByZero(t *testing.T) {
	t.Parallel()

	cfg := Config{Cache: CacheConfig{FreshFor: "0"}}
	cfg.SetDefaults()

	if got := cfg.CacheFreshFor(); got != 0 {
		t.Errorf("CacheFreshFor() with \"0\" = %v, want 0 (cache disabled)", got)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

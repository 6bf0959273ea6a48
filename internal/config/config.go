// Package config provides configuration loading for inkctl.
//
// Configuration is file-based (inkctl.yaml) with environment variable
// overrides under the INKCTL_ prefix. Every field has a working default
// so the CLI runs with no config file at all against a local backend.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the local development backend, used when neither
// the config file nor INKCTL_API_BASE_URL supplies an address.
const DefaultBaseURL = "http://localhost:4000/api"

// Config is the top-level configuration for inkctl.
type Config struct {
	// API configures the backend endpoint and request deadline.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Session configures where the session snapshot is persisted.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Retry configures the read retry policy.
	Retry RetryConfig `yaml:"retry" mapstructure:"retry"`

	// Cache configures the read-result cache.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// LogLevel sets the slog level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend API root (e.g. "https://api.example.com/api").
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the per-request deadline (e.g. "10s").
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	// Path is the session snapshot file. Default: ~/.inkctl/session.json.
	Path string `yaml:"path" mapstructure:"path"`
}

// RetryConfig configures the read retry policy. Writes are never retried.
type RetryConfig struct {
	// ReadAttempts is the total attempts per read, including the first.
	ReadAttempts int `yaml:"read_attempts" mapstructure:"read_attempts" validate:"omitempty,min=1,max=5"`

	// BaseDelay is the backoff delay before the first retry (e.g. "1s").
	BaseDelay string `yaml:"base_delay" mapstructure:"base_delay" validate:"omitempty,duration"`

	// MaxDelay caps the backoff delay (e.g. "30s").
	MaxDelay string `yaml:"max_delay" mapstructure:"max_delay" validate:"omitempty,duration"`
}

// CacheConfig configures the read-result cache.
type CacheConfig struct {
	// FreshFor is how long a cached read is served without refetching
	// (e.g. "5m"). "0" disables the cache.
	FreshFor string `yaml:"fresh_for" mapstructure:"fresh_for" validate:"omitempty,duration"`
}

// SetDefaults fills unset fields with working defaults.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = "10s"
	}
	if c.Session.Path == "" {
		c.Session.Path = DefaultSessionPath()
	}
	if c.Retry.ReadAttempts == 0 {
		c.Retry.ReadAttempts = 2
	}
	if c.Retry.BaseDelay == "" {
		c.Retry.BaseDelay = "1s"
	}
	if c.Retry.MaxDelay == "" {
		c.Retry.MaxDelay = "30s"
	}
	if c.Cache.FreshFor == "" {
		c.Cache.FreshFor = "5m"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// DefaultSessionPath returns ~/.inkctl/session.json, falling back to the
// working directory when the home directory cannot be resolved.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".inkctl", "session.json")
}

// RequestTimeout parses API.Timeout; defaults apply before validation,
// so the string is well-formed by the time this runs.
func (c *Config) RequestTimeout() time.Duration {
	return parseDuration(c.API.Timeout, 10*time.Second)
}

// RetryBaseDelay parses Retry.BaseDelay.
func (c *Config) RetryBaseDelay() time.Duration {
	return parseDuration(c.Retry.BaseDelay, time.Second)
}

// RetryMaxDelay parses Retry.MaxDelay.
func (c *Config) RetryMaxDelay() time.Duration {
	return parseDuration(c.Retry.MaxDelay, 30*time.Second)
}

// CacheFreshFor parses Cache.FreshFor.
func (c *Config) CacheFreshFor() time.Duration {
	return parseDuration(c.Cache.FreshFor, 5*time.Minute)
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" || s == "0" {
		if s == "0" {
			return 0
		}
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

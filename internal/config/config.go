// Package config holds the typed runtime configuration for the gateway.
// Values are layered: built-in defaults, an optional YAML config file, then
// environment variables (DWB_* plus the conventional TRELLO_* credential
// names).
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Trello    TrelloConfig    `mapstructure:"trello"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
}

// TrelloConfig contains the Trello API credentials and transport settings.
type TrelloConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Token   string        `mapstructure:"token"`
	BoardID string        `mapstructure:"board_id"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig sizes the two admission windows. Both ceilings are
// enforced simultaneously; a request proceeds only when each window has a
// free permit.
type RateLimitConfig struct {
	KeyCapacity   int           `mapstructure:"key_capacity"`
	KeyInterval   time.Duration `mapstructure:"key_interval"`
	TokenCapacity int           `mapstructure:"token_capacity"`
	TokenInterval time.Duration `mapstructure:"token_interval"`
}

// RetryConfig controls throttle recovery in the executor.
type RetryConfig struct {
	// Delay is the pause after an absorbed 429 before the next attempt.
	Delay time.Duration `mapstructure:"delay"`

	// MaxAttempts caps throttle retries. Zero means retry until the
	// caller's context expires.
	MaxAttempts int `mapstructure:"max_attempts"`
}

// TemplatesConfig locates user-supplied board templates. The embedded
// defaults are always available; files in Dir override them by name.
type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig contains the optional health/metrics HTTP listener settings.
// The MCP session itself runs over stdio and is not affected.
type ServerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level.
	// Valid values: SIMPLE, STRUCTURED, ENTERPRISE
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Validate rejects configurations the engine cannot run with. Credentials
// are deliberately not checked here; commands that do not talk to Trello
// (version, template listing) must work without them.
func (c *Config) Validate() error {
	if c.RateLimit.KeyCapacity <= 0 {
		return fmt.Errorf("rate_limit.key_capacity must be positive, got %d", c.RateLimit.KeyCapacity)
	}
	if c.RateLimit.TokenCapacity <= 0 {
		return fmt.Errorf("rate_limit.token_capacity must be positive, got %d", c.RateLimit.TokenCapacity)
	}
	if c.RateLimit.KeyInterval <= 0 {
		return fmt.Errorf("rate_limit.key_interval must be positive, got %s", c.RateLimit.KeyInterval)
	}
	if c.RateLimit.TokenInterval <= 0 {
		return fmt.Errorf("rate_limit.token_interval must be positive, got %s", c.RateLimit.TokenInterval)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative, got %s", c.Retry.Delay)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative, got %d", c.Retry.MaxAttempts)
	}
	if c.Server.Enabled && (c.Server.Port < 1 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

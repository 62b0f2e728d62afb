package config

import (
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/core/engine"
)

var (
	currentConfig *Config
	configMu      sync.RWMutex
)

// SetDefaults seeds the viper instance with the gateway's built-in
// configuration. The rate limit defaults mirror Trello's published ceilings:
// 300 requests per 10 seconds per API key and 100 per 10 seconds per token.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("trello.api_key", "")
	v.SetDefault("trello.token", "")
	v.SetDefault("trello.board_id", "")
	v.SetDefault("trello.base_url", "")
	v.SetDefault("trello.timeout", "30s")

	v.SetDefault("rate_limit.key_capacity", engine.DefaultKeyWindow.Capacity)
	v.SetDefault("rate_limit.key_interval", engine.DefaultKeyWindow.Interval.String())
	v.SetDefault("rate_limit.token_capacity", engine.DefaultTokenWindow.Capacity)
	v.SetDefault("rate_limit.token_interval", engine.DefaultTokenWindow.Interval.String())

	v.SetDefault("retry.delay", engine.DefaultRetryDelay.String())
	v.SetDefault("retry.max_attempts", 0)

	v.SetDefault("templates.dir", "")

	v.SetDefault("server.enabled", false)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("health.enabled", true)
}

// BindCredentialEnv binds the conventional TRELLO_* variable names used by
// existing MCP client configurations. The DWB_-prefixed forms set up by
// AutomaticEnv keep working alongside these.
func BindCredentialEnv(v *viper.Viper) {
	_ = v.BindEnv("trello.api_key", "TRELLO_API_KEY")
	_ = v.BindEnv("trello.token", "TRELLO_TOKEN")
	_ = v.BindEnv("trello.board_id", "TRELLO_BOARD_ID")
}

// Load decodes the viper state into a validated Config and publishes it for
// GetConfig callers.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// Duration fields arrive as strings and are converted by the decode hook.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setConfig(cfg)
	return cfg, nil
}

// GetConfig returns the most recently loaded configuration, or nil before
// the first successful Load.
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return currentConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	currentConfig = cfg
}

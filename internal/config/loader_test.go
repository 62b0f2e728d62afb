package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.RateLimit.KeyCapacity)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.KeyInterval)
	assert.Equal(t, 100, cfg.RateLimit.TokenCapacity)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TokenInterval)

	assert.Equal(t, time.Second, cfg.Retry.Delay)
	assert.Equal(t, 0, cfg.Retry.MaxAttempts)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "structured", cfg.Logging.Profile)

	assert.False(t, cfg.Server.Enabled)
	assert.True(t, cfg.Health.Enabled)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
trello:
  board_id: board-from-file
  timeout: 5s
retry:
  delay: 250ms
  max_attempts: 4
server:
  enabled: true
  port: 18080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "board-from-file", cfg.Trello.BoardID)
	assert.Equal(t, 5*time.Second, cfg.Trello.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Delay)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 18080, cfg.Server.Port)

	// Untouched sections keep their defaults.
	assert.Equal(t, 300, cfg.RateLimit.KeyCapacity)
}

func TestCredentialEnvBindings(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "key-from-env")
	t.Setenv("TRELLO_TOKEN", "token-from-env")
	t.Setenv("TRELLO_BOARD_ID", "board-from-env")

	v := newTestViper()
	BindCredentialEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.Trello.APIKey)
	assert.Equal(t, "token-from-env", cfg.Trello.Token)
	assert.Equal(t, "board-from-env", cfg.Trello.BoardID)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"zero key capacity", "rate_limit.key_capacity", 0},
		{"negative token capacity", "rate_limit.token_capacity", -1},
		{"zero key interval", "rate_limit.key_interval", "0s"},
		{"negative retry delay", "retry.delay", "-1s"},
		{"negative max attempts", "retry.max_attempts", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestGetConfigReturnsLastLoaded(t *testing.T) {
	v := newTestViper()
	v.Set("trello.board_id", "published")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Same(t, cfg, GetConfig())
	assert.Equal(t, "published", GetConfig().Trello.BoardID)
}

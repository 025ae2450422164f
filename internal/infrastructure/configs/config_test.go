package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, uint16(4000), cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://www.ceasar.kr"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 60, cfg.Game.DefaultTimerSeconds)
	assert.True(t, cfg.Game.EnforceRoundTimer)
	assert.Equal(t, 5*time.Second, cfg.Game.SecretFetchTimeout)
	assert.Equal(t, "memory", cfg.HintStore.Backend)
	assert.Equal(t, "zap", cfg.Logger.Logger)
	assert.True(t, cfg.RateLimiter.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimiter.Window)
	assert.Equal(t, "development", cfg.Tracing.Environment)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
  read_timeout: 3s
game:
  enforce_round_timer: false
  default_timer_seconds: 45
provider:
  backend: static
  static:
    - display_name: pikachu
      media_ref: https://img.example/25.png
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Game.EnforceRoundTimer)
	assert.Equal(t, 45, cfg.Game.DefaultTimerSeconds)
	require.Len(t, cfg.Provider.Static, 1)
	assert.Equal(t, "pikachu", cfg.Provider.Static[0].DisplayName)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  port: 9090\n")
	t.Setenv("PORT", "7000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("YOUTUBE_API_KEY", "secret")
	t.Setenv("GAME_ENFORCE_ROUND_TIMER", "false")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint16(7000), cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "secret", cfg.Youtube.APIKey)
	assert.False(t, cfg.Game.EnforceRoundTimer)
	assert.Equal(t, "production", cfg.Tracing.Environment)
}

func TestLoad_BadEnvBool(t *testing.T) {
	t.Setenv("GAME_ENFORCE_ROUND_TIMER", "maybe")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Logger.Logger = "logrus"
	cfg.HintStore.Backend = "mongo"
	cfg.Game.DefaultTimerSeconds = 0
	cfg.RateLimiter.Requests = 0

	err = cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "logger.logger")
	assert.Contains(t, msg, "mongo.enabled")
	assert.Contains(t, msg, "default_timer_seconds")
	assert.Contains(t, msg, "rate_limiter")
}

func TestDetermineConfigPath(t *testing.T) {
	assert.Equal(t, "/tmp/x.yaml", DetermineConfigPath([]string{"--config", "/tmp/x.yaml"}))

	t.Setenv("GAME_SERVER_CONFIG", "/tmp/env.yaml")
	assert.Equal(t, "/tmp/env.yaml", DetermineConfigPath(nil))
}

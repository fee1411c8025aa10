package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadintake.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/thank-you", cfg.Server.RedirectTo)
	assert.InDelta(t, 0.2, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 3, cfg.Server.RateBurst)
	assert.InDelta(t, 3, cfg.Notion.RatePerSecond, 0.001)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, 4096, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 8192, cfg.Anthropic.GuideMaxTokens)
	assert.Equal(t, 10, cfg.Presence.ProbeTimeoutSecs)
}

func TestLoadFromYAML(t *testing.T) {
	chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/leads
log:
  level: debug
  format: console
server:
  port: 9090
  webhook_secret: hunter2
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/leads", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "hunter2", cfg.Server.WebhookSecret)
	// Defaults still apply for unset values
	assert.Equal(t, "/thank-you", cfg.Server.RedirectTo)
	assert.Equal(t, 4096, cfg.Anthropic.MaxTokens)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	yaml := `
store:
  driver: sqlite
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADINTAKE_STORE_DRIVER", "postgres")
	t.Setenv("LEADINTAKE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LEADINTAKE_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadSecretsFromEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LEADINTAKE_NOTION_TOKEN", "secret_abc")
	t.Setenv("LEADINTAKE_ANTHROPIC_KEY", "sk-ant-test")
	t.Setenv("LEADINTAKE_POSTMARK_SERVER_TOKEN", "pm-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret_abc", cfg.Notion.Token)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
	assert.Equal(t, "pm-token", cfg.Postmark.ServerToken)
}

func TestConfigured(t *testing.T) {
	assert.False(t, NotionConfig{}.Configured())
	assert.True(t, NotionConfig{Token: "secret"}.Configured())

	assert.False(t, AnthropicConfig{}.Configured())
	assert.True(t, AnthropicConfig{Key: "sk-ant"}.Configured())

	assert.False(t, PostmarkConfig{ServerToken: "tok"}.Configured())
	assert.False(t, PostmarkConfig{FromAddress: "a@b.c"}.Configured())
	assert.True(t, PostmarkConfig{ServerToken: "tok", FromAddress: "a@b.c"}.Configured())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}

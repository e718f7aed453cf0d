package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	// Run from an empty directory so no stray config.yaml is picked up.
	t.Chdir(t.TempDir())

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, filepath.Join("data", "menu-fit.db"), cfg.Database.Path)
		assert.True(t, cfg.TUI.AltScreen)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("MENUFIT_TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("MENUFIT_TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")
		t.Setenv("MENUFIT_TELEGRAM_ADMIN_ID", "42")
		t.Setenv("MENUFIT_TELEGRAM_ALLOWED_USER_IDS", "42,43")
		t.Setenv("MENUFIT_SESSION_TTL", "30m")
		t.Setenv("MENUFIT_LOGGING_LEVEL", "debug")
		t.Setenv("MENUFIT_SERVER_PORT", "9090")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "token", cfg.Telegram.BotToken)
		assert.Equal(t, "https://bot.test/webhook", cfg.Telegram.WebhookURL)
		assert.Equal(t, int64(42), cfg.Telegram.AdminID)
		assert.Equal(t, []int64{42, 43}, cfg.Telegram.AllowedUserIDs)
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.NoError(t, cfg.RequireBot())
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		t.Setenv("MENUFIT_LOGGING_LEVEL", "loud")
		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging.level")
	})
}

func TestNew_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu-fit.yaml")
	content := `
telegram:
  bot_token: from-file
  allowed_user_ids: [7, 11]
export:
  dir: /tmp/exports
session:
  ttl: 45m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Telegram.BotToken)
	assert.Equal(t, []int64{7, 11}, cfg.Telegram.AllowedUserIDs)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL)
}

func TestNew_MissingConfigFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRequireBot(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		cfg := Default()
		cfg.Telegram.WebhookURL = "https://bot.test/webhook"
		err := cfg.RequireBot()
		require.Error(t, err)
		assert.Equal(t, "MENUFIT_TELEGRAM_BOT_TOKEN environment variable not set", err.Error())
	})

	t.Run("MissingWebhook", func(t *testing.T) {
		cfg := Default()
		cfg.Telegram.BotToken = "token"
		err := cfg.RequireBot()
		require.Error(t, err)
		assert.Equal(t, "MENUFIT_TELEGRAM_WEBHOOK_URL environment variable not set", err.Error())
	})

	t.Run("EmptyAllowList", func(t *testing.T) {
		cfg := Default()
		cfg.Telegram.BotToken = "token"
		cfg.Telegram.WebhookURL = "https://bot.test/webhook"
		err := cfg.RequireBot()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "allowed_user_ids")

		cfg.Telegram.AllowedUserIDs = []int64{42}
		assert.NoError(t, cfg.RequireBot())
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Session.TTL = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestIsAllowed(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Telegram.AllowedUserIDs)
	assert.False(t, cfg.IsAllowed(1), "empty allow list admits no one")
	assert.False(t, cfg.IsAllowed(0))

	cfg.Telegram.AllowedUserIDs = []int64{5, 6}
	assert.True(t, cfg.IsAllowed(6))
	assert.False(t, cfg.IsAllowed(7))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// MENUFIT_TELEGRAM_BOT_TOKEN for telegram.bot_token.
const EnvPrefix = "MENUFIT"

// Config holds the configuration for the application.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
}

// TelegramConfig configures the bot front-end.
type TelegramConfig struct {
	BotToken       string  `mapstructure:"bot_token"`
	WebhookURL     string  `mapstructure:"webhook_url"`
	AllowedUserIDs []int64 `mapstructure:"allowed_user_ids"`
	// AdminID receives the /metrics report. 0 disables it.
	AdminID int64 `mapstructure:"admin_id"`
}

// ServerConfig configures the webhook HTTP server.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// SessionConfig controls how long an idle bot conversation is kept.
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig points to the SQLite file holding usage metrics.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig controls where exported shopping lists are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// File receives logs in TUI mode, where the terminal belongs to the UI.
	File string `mapstructure:"file"`
	// Development switches to the human readable console encoder.
	Development bool `mapstructure:"development"`
}

// TUIConfig controls the terminal UI.
type TUIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Session:  SessionConfig{TTL: 2 * time.Hour},
		Database: DatabaseConfig{Path: filepath.Join("data", "menu-fit.db")},
		Export:   ExportConfig{Dir: "."},
		Logging:  LoggingConfig{Level: "info", File: filepath.Join("data", "menu-fit.log")},
		TUI:      TUIConfig{AltScreen: true},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("telegram.bot_token", d.Telegram.BotToken)
	v.SetDefault("telegram.webhook_url", d.Telegram.WebhookURL)
	v.SetDefault("telegram.allowed_user_ids", []int64{})
	v.SetDefault("telegram.admin_id", d.Telegram.AdminID)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("tui.alt_screen", d.TUI.AltScreen)
}

// New returns a viper instance wired for MENUFIT_* environment overrides
// and, when cfgFile is set or a config.yaml is found, a config file.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "menu-fit"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes the viper state into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewFromEnv loads the configuration from defaults, an optional config file
// and MENUFIT_* environment variables.
func NewFromEnv() (*Config, error) {
	v, err := New("")
	if err != nil {
		return nil, err
	}
	return Load(v)
}

// Validate checks values that apply to every mode.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return nil
}

// RequireBot checks the settings only the Telegram bot needs.
func (c *Config) RequireBot() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%s_TELEGRAM_BOT_TOKEN environment variable not set", EnvPrefix)
	}
	if c.Telegram.WebhookURL == "" {
		return fmt.Errorf("%s_TELEGRAM_WEBHOOK_URL environment variable not set", EnvPrefix)
	}
	if len(c.Telegram.AllowedUserIDs) == 0 {
		return fmt.Errorf("telegram.allowed_user_ids is empty, the bot would reject every user")
	}
	return nil
}

// IsAllowed reports whether the Telegram user may talk to the bot. Only
// listed users are admitted; an empty list admits no one.
func (c *Config) IsAllowed(userID int64) bool {
	return slices.Contains(c.Telegram.AllowedUserIDs, userID)
}

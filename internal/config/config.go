package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Storage struct {
		Backend string `yaml:"backend" validate:"oneof=sqlite badger memory"`
		Path    string `yaml:"path" validate:"required_unless=Backend memory"`
	} `yaml:"storage"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
	Schedule struct {
		// cron expressions, UTC
		DailySummary  string `yaml:"daily_summary" validate:"required"`
		HabitReminder string `yaml:"habit_reminder" validate:"required"`
	} `yaml:"schedule"`
}

var validate = validator.New()

func Default() *Config {
	cfg := &Config{}
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = "kikehq.db"
	cfg.Log.Level = "info"
	cfg.Schedule.DailySummary = "55 20 * * *"
	cfg.Schedule.HabitReminder = "0 19 * * *"
	return cfg
}

// Load builds the configuration from defaults, then the YAML file named
// by KIKEHQ_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("KIKEHQ_CONFIG", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("✅ configuration loaded",
		"storage", cfg.Storage.Backend,
		"path", cfg.Storage.Path,
		"telegram", cfg.Telegram.Token != "")
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Telegram.Token = getEnv("TG_TOKEN", c.Telegram.Token)
	if raw := getEnv("TG_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TG_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}
	c.Metrics.Addr = getEnv("KIKEHQ_METRICS_ADDR", c.Metrics.Addr)
	c.Storage.Backend = strings.ToLower(getEnv("KIKEHQ_STORAGE", c.Storage.Backend))
	c.Storage.Path = getEnv("KIKEHQ_DB_PATH", c.Storage.Path)
	c.Log.Level = strings.ToLower(getEnv("KIKEHQ_LOG_LEVEL", c.Log.Level))
	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return errors.New("invalid config: telegram chat_id is required with a token")
	}
	return nil
}

// BotEnabled reports whether the Telegram front end can start.
func (c *Config) BotEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
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

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

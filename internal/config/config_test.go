package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"KIKEHQ_CONFIG", "TG_TOKEN", "TG_CHAT_ID", "KIKEHQ_METRICS_ADDR", "KIKEHQ_STORAGE", "KIKEHQ_DB_PATH", "KIKEHQ_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "kikehq.db", cfg.Storage.Path)
	assert.False(t, cfg.BotEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "kikehq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  token: "abc"
  chat_id: 42
storage:
  backend: badger
  path: /tmp/kikehq
log:
  level: debug
`), 0o600))

	t.Setenv("KIKEHQ_CONFIG", path)
	t.Setenv("KIKEHQ_DB_PATH", "/var/lib/kikehq")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/kikehq", cfg.Storage.Path)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.True(t, cfg.BotEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "55 20 * * *", cfg.Schedule.DailySummary, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown backend": {"KIKEHQ_STORAGE": "postgres"},
		"bad chat id":     {"TG_CHAT_ID": "not-a-number"},
		"token w/o chat":  {"TG_TOKEN": "abc"},
		"bad log level":   {"KIKEHQ_LOG_LEVEL": "loud"},
		"missing file":    {"KIKEHQ_CONFIG": "/nonexistent/kikehq.yaml"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "memory"
	cfg.Storage.Path = ""
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Backend = "sqlite"
	assert.Error(t, cfg.Validate())
}

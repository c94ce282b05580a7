package config_test

import (
	"log/slog"
	"testing"

	"github.com/SscSPs/demerit_registry/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, config.ModeServe, cfg.Mode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, config.StoreDriverFile, cfg.StoreDriver)
	assert.Equal(t, "persons.txt", cfg.StorePath)
	assert.Equal(t, 1024, cfg.SessionCacheSize)
	assert.False(t, cfg.ReplayAuditOnLoad)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_PATH", "/var/lib/registry/persons.txt")
	t.Setenv("SESSION_CACHE_SIZE", "16")
	t.Setenv("REPLAY_AUDIT_ON_LOAD", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/var/lib/registry/persons.txt", cfg.StorePath)
	assert.Equal(t, 16, cfg.SessionCacheSize)
	assert.True(t, cfg.ReplayAuditOnLoad)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.LoadConfig([]string{"--port", "7000", "--mode", "demo", "--store-path", "demo.txt"})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, config.ModeDemo, cfg.Mode)
	assert.Equal(t, "demo.txt", cfg.StorePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
		{name: "postgres without url", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "zero cache", env: map[string]string{"SESSION_CACHE_SIZE": "0"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad mode", args: []string{"--mode", "batch"}},
		{name: "unknown flag", args: []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "POSTGRES")
	t.Setenv("PGSQL_URL", "postgres://registry@localhost:5432/registry")

	cfg, err := config.LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://registry@localhost:5432/registry", cfg.DatabaseURL)
}

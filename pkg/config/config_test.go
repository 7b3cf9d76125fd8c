package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "datasets/diabetes_model.json", cfg.Model.Path)
	assert.Equal(t, "datasets/diabetes.csv", cfg.Model.BackgroundDataPath)
	assert.Equal(t, HistoryBackendFile, cfg.History.Backend)
	assert.Equal(t, "user_data", cfg.History.UserDataDir)
	assert.Equal(t, "mock", cfg.Nutrition.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Advice.Model)
	assert.Equal(t, 60, cfg.Advice.RateLimitRPM)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("HISTORY_BACKEND", HistoryBackendPostgres)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("SERVER_HOST", "127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, HistoryBackendPostgres, cfg.History.Backend)
	assert.True(t, cfg.OTEL.Enabled)
	assert.Contains(t, cfg.Database.DatabaseDSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DatabaseDSN(), "password=secret")
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

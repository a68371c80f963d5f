package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/casefile/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
	assert.False(t, cfg.Locking)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CASEFILE_STORE", "redis")
	t.Setenv("CASEFILE_REDIS_ADDR", "cache:6380")
	t.Setenv("CASEFILE_REDIS_TTL", "1h")
	t.Setenv("CASEFILE_LOCKING", "true")
	t.Setenv("CASEFILE_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.True(t, cfg.Locking)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CASEFILE_STORE", "postgres")
	_, err := config.Load()
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = config.ParseLevel("loud")
	assert.Error(t, err)
}

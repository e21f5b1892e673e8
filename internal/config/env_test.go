package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Address)
	assert.Equal(t, 8888, cfg.Port)
	assert.Equal(t, 0, cfg.Workers)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "prod", cfg.Environment)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("COMPUTE_WORKERS", "4")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("ENVIRONMENT", "dev")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "redis.internal", cfg.RedisHost)
	assert.Equal(t, "dev", cfg.Environment)
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimitRefill())
	assert.Equal(t, 100, cfg.History.Capacity)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
http:
  port: "9090"
redis:
  enabled: true
  addr: redis:6379
  ttlSeconds: 0
rateLimit:
  capacity: 10
  refillSeconds: 30
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv("KPI_HTTP_PORT", ":7070")
	t.Setenv("KPI_REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddress())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL())
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimitRefill())
	assert.Equal(t, 100, cfg.History.Capacity)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv("KPI_REDIS_ENABLED", "maybe")

	_, err := Load()
	assert.ErrorContains(t, err, "config: parse env")
	assert.ErrorContains(t, err, "Enabled")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "config: read file")
}

func TestLoad_RedisWithoutAddr(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv("KPI_REDIS_ENABLED", "true")
	t.Setenv("KPI_REDIS_ADDR", " ")

	_, err := Load()
	assert.EqualError(t, err, "config: redis addr required when redis is enabled")
}

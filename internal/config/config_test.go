package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CACHE_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"REDIS_TTL", "PER_MILE_VALUE", "FETCH_TIMEOUT", "RATES_FILE", "PROVIDER_MODE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.015, cfg.PerMileValue)
	assert.Equal(t, ProviderModeStatic, cfg.ProviderMode)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 15*time.Minute, cfg.RedisTTL)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: "9090"
per_mile_value: 0.012
redis_ttl: 30m
provider_mode: http
providers:
  - name: seats
    base_url: https://awards.example.com
    api_key_env: SEATS_KEY
    carriers: [UA, NH]
    rate_limit:
      requests_per_second: 2
      burst: 4
`)
	t.Setenv("PER_MILE_VALUE", "0.02")
	t.Setenv("CACHE_ENABLED", "yes")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.02, cfg.PerMileValue)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 30*time.Minute, cfg.RedisTTL)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, []string{"UA", "NH"}, cfg.Providers[0].Carriers)
	assert.Equal(t, 4, cfg.Providers[0].RateLimit.Burst)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("PER_MILE_VALUE", "1.5")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("PER_MILE_VALUE", "")
	_, err = Load(writeConfig(t, "provider_mode: http\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "provider_mode: carrier-pigeon\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadExampleConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderModeHTTP, cfg.ProviderMode)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 300 * time.Millisecond}, cfg.RetryDelays)
	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "AWARD_DIRECT_API_KEY", cfg.Providers[0].APIKeyEnv)
	assert.Zero(t, cfg.Providers[1].RateLimit.Burst)
}

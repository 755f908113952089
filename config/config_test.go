package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "divisors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.True(t, cfg.IncludeOne)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, StrategyFixed, cfg.Rate.Strategy)
	assert.Equal(t, 100, cfg.Rate.PermitLimit)
	assert.Equal(t, 10*time.Second, cfg.Rate.Window)
	assert.Equal(t, PartitionGlobal, cfg.Rate.Partition)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 10_000, cfg.Cache.SizeLimit)
	assert.Equal(t, 2*time.Minute, cfg.Cache.SlidingExpiration)
	assert.Equal(t, BackendNone, cfg.Stats.Backend)
	assert.Equal(t, 100, cfg.Concurrency.Max)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := writeFile(t, `
listen_addr: ":9090"
include_one: false
rate:
  strategy: token
  rps: 5
  burst: 7
  partition: client
  key_header: X-Api-Key
cache:
  backend: redis
  sliding_expiration: 5m
  redis:
    addr: "localhost:6379"
`)
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("RATE_BURST", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.False(t, cfg.IncludeOne)
	assert.Equal(t, StrategyToken, cfg.Rate.Strategy)
	assert.Equal(t, 5.0, cfg.Rate.RPS)
	assert.Equal(t, 3, cfg.Rate.Burst)
	assert.Equal(t, PartitionClient, cfg.Rate.Partition)
	assert.Equal(t, "X-Api-Key", cfg.Rate.KeyHeader)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SlidingExpiration)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	// ausente no arquivo mantém o padrão
	assert.Equal(t, 10_000, cfg.Cache.SizeLimit)
}

func TestLoad_LowRPSDefaultsBurstToOne(t *testing.T) {
	t.Setenv("RATE_STRATEGY", "token")
	t.Setenv("RATE_RPS", "0.02")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Rate.Burst)
}

func TestLoad_InvalidEnvValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("RATE_PERMIT_LIMIT", "abc")
	t.Setenv("RATE_WINDOW", "ten seconds")
	t.Setenv("RATE_ENABLED", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Rate.PermitLimit)
	assert.Equal(t, 10*time.Second, cfg.Rate.Window)
	assert.True(t, cfg.Rate.Enabled)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownFieldIsError(t *testing.T) {
	_, err := Load(writeFile(t, "listen_adr: \":1\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"unknown strategy", func(c *Config) { c.Rate.Strategy = "sliding" }, "RATE_STRATEGY"},
		{"zero permit limit", func(c *Config) { c.Rate.PermitLimit = 0 }, "RATE_PERMIT_LIMIT"},
		{"zero window", func(c *Config) { c.Rate.Window = 0 }, "RATE_WINDOW"},
		{"token zero rps", func(c *Config) { c.Rate.Strategy = StrategyToken; c.Rate.RPS = 0 }, "RATE_RPS"},
		{"token zero burst", func(c *Config) { c.Rate.Strategy = StrategyToken; c.Rate.Burst = 0 }, "RATE_BURST"},
		{"bad partition", func(c *Config) { c.Rate.Partition = "ip" }, "RATE_PARTITION"},
		{"negative concurrency", func(c *Config) { c.Concurrency.Max = -1 }, "CONCURRENCY_MAX"},
		{"redis cache without addr", func(c *Config) { c.Cache.Backend = BackendRedis }, "CACHE_REDIS_ADDR"},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, "CACHE_BACKEND"},
		{"redis stats without addr", func(c *Config) { c.Stats.Backend = BackendRedis }, "RATE_STATS_REDIS_ADDR"},
		{"unknown stats backend", func(c *Config) { c.Stats.Backend = "postgres" }, "RATE_STATS_BACKEND"},
		{"empty listen addr", func(c *Config) { c.ListenAddr = " " }, "LISTEN_ADDR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

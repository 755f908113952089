package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func applyEnv(cfg *Config) {
	cfg.ListenAddr = getenvDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.IncludeOne = getenvBoolDefault("INCLUDE_ONE", cfg.IncludeOne)

	r := &cfg.Rate
	r.Enabled = getenvBoolDefault("RATE_ENABLED", r.Enabled)
	r.Strategy = strings.ToLower(getenvDefault("RATE_STRATEGY", r.Strategy))
	r.PermitLimit = getenvIntDefault("RATE_PERMIT_LIMIT", r.PermitLimit)
	r.Window = getenvDurationDefault("RATE_WINDOW", r.Window)
	r.RPS = getenvFloatDefault("RATE_RPS", r.RPS)
	// IMPORTANTE: o "burst" permite uma rajada inicial de requisições.
	// Com RPS muito baixo (ex: 0.02), o padrão 20 dá a impressão de que o limiter
	// não funciona, porque as primeiras ~20 passam.
	if burst, ok := getenvInt("RATE_BURST"); ok {
		r.Burst = burst
	} else if getenvIsSet("RATE_RPS") && r.RPS > 0 && r.RPS < 1 {
		r.Burst = 1
	}
	r.Partition = strings.ToLower(getenvDefault("RATE_PARTITION", r.Partition))
	r.KeyHeader = getenvDefault("RATE_KEY_HEADER", r.KeyHeader)
	r.TrustXFF = getenvBoolDefault("TRUST_XFF", r.TrustXFF)
	r.RetryAfter = getenvDurationDefault("RETRY_AFTER", r.RetryAfter)
	r.AddHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", r.AddHeaders)

	cfg.Concurrency.Max = getenvIntDefault("CONCURRENCY_MAX", cfg.Concurrency.Max)
	cfg.Concurrency.Timeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", cfg.Concurrency.Timeout)

	s := &cfg.Stats
	s.Backend = strings.ToLower(getenvDefault("RATE_STATS_BACKEND", s.Backend))
	s.Redis.Addr = getenvDefault("RATE_STATS_REDIS_ADDR", s.Redis.Addr)
	s.Redis.Password = getenvDefault("RATE_STATS_REDIS_PASSWORD", s.Redis.Password)
	s.Redis.DB = getenvIntDefault("RATE_STATS_REDIS_DB", s.Redis.DB)
	s.Prefix = getenvDefault("RATE_STATS_PREFIX", s.Prefix)
	s.TTL = getenvDurationDefault("RATE_STATS_TTL", s.TTL)
	s.Bucket = getenvDefault("RATE_STATS_BUCKET", s.Bucket)
	s.TrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", s.TrackKeys)

	c := &cfg.Cache
	c.Backend = strings.ToLower(getenvDefault("CACHE_BACKEND", c.Backend))
	c.SizeLimit = getenvIntDefault("CACHE_SIZE_LIMIT", c.SizeLimit)
	c.SlidingExpiration = getenvDurationDefault("CACHE_SLIDING_EXPIRATION", c.SlidingExpiration)
	c.Redis.Addr = getenvDefault("CACHE_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenvDefault("CACHE_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getenvIntDefault("CACHE_REDIS_DB", c.Redis.DB)
	c.Prefix = getenvDefault("CACHE_REDIS_PREFIX", c.Prefix)
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	if i, ok := getenvInt(k); ok {
		return i
	}
	return def
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvIsSet(k string) bool {
	v, ok := os.LookupEnv(k)
	return ok && v != ""
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Package config carrega a configuração da API de divisores.
//
// Ordem: valores padrão, depois o arquivo YAML opcional (CONFIG_FILE) e por fim
// as variáveis de ambiente, que sempre vencem.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StrategyFixed = "fixed"
	StrategyToken = "token"

	PartitionGlobal = "global"
	PartitionClient = "client"

	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Strategy    string        `yaml:"strategy"`
	PermitLimit int           `yaml:"permit_limit"`
	Window      time.Duration `yaml:"window"`
	RPS         float64       `yaml:"rps"`
	Burst       int           `yaml:"burst"`
	Partition   string        `yaml:"partition"`
	KeyHeader   string        `yaml:"key_header"`
	TrustXFF    bool          `yaml:"trust_xff"`
	RetryAfter  time.Duration `yaml:"retry_after"`
	AddHeaders  bool          `yaml:"add_headers"`
}

type StatsConfig struct {
	Backend   string        `yaml:"backend"`
	Redis     RedisConfig   `yaml:"redis"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl"`
	Bucket    string        `yaml:"bucket"`
	TrackKeys bool          `yaml:"track_keys"`
}

type ConcurrencyConfig struct {
	Max     int           `yaml:"max"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Backend           string        `yaml:"backend"`
	SizeLimit         int           `yaml:"size_limit"`
	SlidingExpiration time.Duration `yaml:"sliding_expiration"`
	Redis             RedisConfig   `yaml:"redis"`
	Prefix            string        `yaml:"prefix"`
}

type Config struct {
	ListenAddr  string            `yaml:"listen_addr"`
	IncludeOne  bool              `yaml:"include_one"`
	Rate        RateConfig        `yaml:"rate"`
	Stats       StatsConfig       `yaml:"stats"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
}

// Default devolve a política da API original: janela fixa global de 100
// requisições a cada 10s e cache em memória de 10 000 entradas com 2 min de
// expiração deslizante.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		IncludeOne: true,
		Rate: RateConfig{
			Enabled:     true,
			Strategy:    StrategyFixed,
			PermitLimit: 100,
			Window:      10 * time.Second,
			RPS:         10,
			Burst:       20,
			Partition:   PartitionGlobal,
			RetryAfter:  1 * time.Second,
		},
		Stats: StatsConfig{
			Backend: BackendNone,
			Prefix:  "divisors:ratelimit",
			TTL:     24 * time.Hour,
			Bucket:  "minute",
		},
		Concurrency: ConcurrencyConfig{
			Max: 100,
		},
		Cache: CacheConfig{
			Backend:           BackendMemory,
			SizeLimit:         10_000,
			SlidingExpiration: 2 * time.Minute,
			Prefix:            "divisors",
		},
	}
}

// Load monta a configuração final. path vazio ignora o arquivo.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is required"))
	}

	switch c.Rate.Strategy {
	case StrategyFixed:
		if c.Rate.PermitLimit <= 0 {
			errs = append(errs, errors.New("RATE_PERMIT_LIMIT must be > 0"))
		}
		if c.Rate.Window <= 0 {
			errs = append(errs, errors.New("RATE_WINDOW must be > 0"))
		}
	case StrategyToken:
		if c.Rate.RPS <= 0 {
			errs = append(errs, errors.New("RATE_RPS must be > 0"))
		}
		if c.Rate.Burst <= 0 {
			errs = append(errs, errors.New("RATE_BURST must be > 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("RATE_STRATEGY must be %q or %q, got %q", StrategyFixed, StrategyToken, c.Rate.Strategy))
	}

	switch c.Rate.Partition {
	case PartitionGlobal, PartitionClient:
	default:
		errs = append(errs, fmt.Errorf("RATE_PARTITION must be %q or %q, got %q", PartitionGlobal, PartitionClient, c.Rate.Partition))
	}

	if c.Concurrency.Max < 0 {
		errs = append(errs, errors.New("CONCURRENCY_MAX must be >= 0"))
	}

	switch c.Cache.Backend {
	case BackendNone:
	case BackendMemory:
		if c.Cache.SizeLimit < 0 {
			errs = append(errs, errors.New("CACHE_SIZE_LIMIT must be >= 0"))
		}
	case BackendRedis:
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			errs = append(errs, errors.New("CACHE_REDIS_ADDR is required when CACHE_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be none, memory or redis, got %q", c.Cache.Backend))
	}

	switch c.Stats.Backend {
	case BackendNone, BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Stats.Redis.Addr) == "" {
			errs = append(errs, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("RATE_STATS_BACKEND must be none, memory or redis, got %q", c.Stats.Backend))
	}

	return errors.Join(errs...)
}

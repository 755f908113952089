package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"divisors-gateway/divisors/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache guarda resultados em Redis como JSON.
//
// A expiração é deslizante: Set grava com TTL e Get usa GETEX para renovar o TTL
// a cada leitura. Útil quando várias instâncias da API compartilham o cache.
type RedisCache struct {
	rdb *redis.Client

	prefix  string
	sliding time.Duration
}

type RedisCacheOption func(*RedisCache)

func WithCachePrefix(prefix string) RedisCacheOption {
	return func(c *RedisCache) { c.prefix = strings.Trim(prefix, ":") }
}

func WithCacheTTL(d time.Duration) RedisCacheOption {
	return func(c *RedisCache) { c.sliding = d }
}

func NewRedisCache(rdb *redis.Client, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		rdb:     rdb,
		prefix:  "divisors",
		sliding: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(n int64) string {
	if c.prefix == "" {
		return domain.CacheKey(n)
	}
	return c.prefix + ":" + domain.CacheKey(n)
}

// Get implementa domain.ResultCache.
func (c *RedisCache) Get(ctx context.Context, n int64) (domain.Result, bool, error) {
	if c == nil || c.rdb == nil {
		return domain.Result{}, false, nil
	}

	var (
		data []byte
		err  error
	)
	if c.sliding > 0 {
		data, err = c.rdb.GetEx(ctx, c.key(n), c.sliding).Bytes()
	} else {
		data, err = c.rdb.Get(ctx, c.key(n)).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return domain.Result{}, false, nil
	}
	if err != nil {
		return domain.Result{}, false, err
	}

	var res domain.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return domain.Result{}, false, fmt.Errorf("decode %s: %w", c.key(n), err)
	}
	return res, true, nil
}

// Set implementa domain.ResultCache.
func (c *RedisCache) Set(ctx context.Context, n int64, r domain.Result) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	r.Cached = false
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key(n), err)
	}
	return c.rdb.Set(ctx, c.key(n), data, c.sliding).Err()
}

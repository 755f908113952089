package infra

import (
	"context"
	"sync"
	"time"

	"divisors-gateway/divisors/domain"
)

// MemoryCache é um cache em memória com expiração deslizante: cada leitura
// renova o prazo da entrada. Quando atinge o limite de entradas, remove as
// expiradas e, se ainda estiver cheio, a usada há mais tempo.
type MemoryCache struct {
	mu           sync.Mutex
	entries      map[int64]*cacheEntry
	sliding      time.Duration
	sizeLimit    int
	cleanupEvery time.Duration
	now          func() time.Time
}

type cacheEntry struct {
	res      domain.Result
	lastSeen time.Time
}

type MemoryCacheOption func(*MemoryCache)

func WithSlidingExpiration(d time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) { c.sliding = d }
}

func WithSizeLimit(n int) MemoryCacheOption {
	return func(c *MemoryCache) { c.sizeLimit = n }
}

func WithCacheCleanupEvery(d time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) { c.cleanupEvery = d }
}

func withClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) { c.now = now }
}

func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries:      make(map[int64]*cacheEntry),
		sliding:      2 * time.Minute,
		sizeLimit:    10_000,
		cleanupEvery: 1 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) SlidingExpiration() time.Duration { return c.sliding }
func (c *MemoryCache) SizeLimit() int                   { return c.sizeLimit }

// Get implementa domain.ResultCache.
func (c *MemoryCache) Get(_ context.Context, n int64) (domain.Result, bool, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[n]
	if !ok {
		return domain.Result{}, false, nil
	}
	if c.expired(ent, now) {
		delete(c.entries, n)
		return domain.Result{}, false, nil
	}
	ent.lastSeen = now
	return cloneResult(ent.res), true, nil
}

// Set implementa domain.ResultCache.
func (c *MemoryCache) Set(_ context.Context, n int64, r domain.Result) error {
	now := c.now()
	r = cloneResult(r)
	r.Cached = false

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[n]; ok {
		ent.res = r
		ent.lastSeen = now
		return nil
	}

	if c.sizeLimit > 0 && len(c.entries) >= c.sizeLimit {
		c.removeExpiredLocked(now)
		if len(c.entries) >= c.sizeLimit {
			c.evictOldestLocked()
		}
	}
	c.entries[n] = &cacheEntry{res: r, lastSeen: now}
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup remove entradas que passaram do prazo deslizante.
func (c *MemoryCache) Cleanup() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeExpiredLocked(now)
}

// StartJanitor inicia uma goroutine que chama Cleanup periodicamente.
// Pare cancelando o contexto.
func (c *MemoryCache) StartJanitor(ctx context.Context) {
	if c.cleanupEvery <= 0 || c.sliding <= 0 {
		return
	}

	t := time.NewTicker(c.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.Cleanup()
			}
		}
	}()
}

func (c *MemoryCache) expired(ent *cacheEntry, now time.Time) bool {
	return c.sliding > 0 && now.Sub(ent.lastSeen) >= c.sliding
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) {
	for k, ent := range c.entries {
		if c.expired(ent, now) {
			delete(c.entries, k)
		}
	}
}

func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestKey int64
		oldest    time.Time
		found     bool
	)
	for k, ent := range c.entries {
		if !found || ent.lastSeen.Before(oldest) {
			oldestKey, oldest, found = k, ent.lastSeen, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// cloneResult evita que o chamador altere as fatias guardadas no cache.
func cloneResult(r domain.Result) domain.Result {
	r.Divisors = cloneInts(r.Divisors)
	r.PrimeDivisors = cloneInts(r.PrimeDivisors)
	return r
}

func cloneInts(s []int64) []int64 {
	if s == nil {
		return nil
	}
	out := make([]int64, len(s))
	copy(out, s)
	return out
}

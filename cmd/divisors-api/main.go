package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"divisors-gateway/config"
	"divisors-gateway/divisors/application"
	"divisors-gateway/divisors/domain"
	"divisors-gateway/divisors/httpapi"
	divinfra "divisors-gateway/divisors/infra"
	"divisors-gateway/middleware/ratelimit"
	ratedomain "divisors-gateway/middleware/ratelimit/domain"
	"divisors-gateway/middleware/ratelimit/infra"

	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cache, closeCache, err := buildCache(ctx, cfg.Cache)
	if err != nil {
		log.Fatalf("cache error: %v", err)
	}
	defer closeCache()

	svc := application.Service{
		Cache:        cache,
		IncludeOne:   cfg.IncludeOne,
		OnCacheError: func(err error) { log.Printf("cache error: %v", err) },
	}

	statsStore, statsFn, closeStats, err := buildStats(ctx, cfg.Stats)
	if err != nil {
		log.Fatalf("rate-stats error: %v", err)
	}
	defer closeStats()

	opts := httpapi.Options{
		Service:   svc,
		Stats:     statsFn,
		AccessLog: true,
	}

	if cfg.Concurrency.Max > 0 {
		pool := infra.NewChanPool(cfg.Concurrency.Max)
		opts.Slots = pool
		opts.Concurrency = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
			Pool:           pool,
			RejectStatus:   http.StatusServiceUnavailable,
			AcquireTimeout: cfg.Concurrency.Timeout,
			JSONErrors:     true,
		})
	}

	if cfg.Rate.Enabled {
		var store *infra.Store
		if cfg.Rate.Strategy == config.StrategyToken {
			store = infra.NewStore(cfg.Rate.RPS, cfg.Rate.Burst)
		} else {
			store = infra.NewFixedWindowStore(cfg.Rate.PermitLimit, cfg.Rate.Window)
		}
		store.StartJanitor(ctx)

		var keyFn ratelimit.KeyFunc
		if cfg.Rate.Partition == config.PartitionGlobal {
			keyFn = ratelimit.GlobalKeyFunc
		}
		opts.RateLimit = ratelimit.Middleware(ratelimit.Options{
			Store:               store,
			Stats:               statsStore,
			KeyFn:               keyFn,
			RouteFn:             httpapi.RoutePattern,
			KeyHeader:           cfg.Rate.KeyHeader,
			TrustXForwardedFor:  cfg.Rate.TrustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.Rate.RetryAfter,
			AddRateLimitHeaders: cfg.Rate.AddHeaders,
			JSONErrors:          true,
		})
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("divisors api listening on %s (docs at /docs)", cfg.ListenAddr)
	log.Printf("rate: enabled=%v strategy=%s limit=%d window=%s rps=%.3f burst=%d partition=%s", cfg.Rate.Enabled, cfg.Rate.Strategy, cfg.Rate.PermitLimit, cfg.Rate.Window, cfg.Rate.RPS, cfg.Rate.Burst, cfg.Rate.Partition)
	log.Printf("rate-stats: backend=%s bucket=%q ttl=%s trackKeys=%v", cfg.Stats.Backend, cfg.Stats.Bucket, cfg.Stats.TTL, cfg.Stats.TrackKeys)
	log.Printf("cache: backend=%s sizeLimit=%d sliding=%s", cfg.Cache.Backend, cfg.Cache.SizeLimit, cfg.Cache.SlidingExpiration)
	log.Printf("concurrency: max=%d acquireTimeout=%s includeOne=%v", cfg.Concurrency.Max, cfg.Concurrency.Timeout, cfg.IncludeOne)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func buildCache(ctx context.Context, cfg config.CacheConfig) (domain.ResultCache, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		c := divinfra.NewMemoryCache(
			divinfra.WithSizeLimit(cfg.SizeLimit),
			divinfra.WithSlidingExpiration(cfg.SlidingExpiration),
		)
		c.StartJanitor(ctx)
		return c, func() {}, nil
	case config.BackendRedis:
		rdb, err := dialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		c := divinfra.NewRedisCache(rdb,
			divinfra.WithCachePrefix(cfg.Prefix),
			divinfra.WithCacheTTL(cfg.SlidingExpiration),
		)
		return c, func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

func buildStats(ctx context.Context, cfg config.StatsConfig) (ratedomain.StatsStore, httpapi.StatsFunc, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		s := infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.TrackKeys))
		fn := func(context.Context) (any, error) { return s.Snapshot(), nil }
		return s, fn, func() {}, nil
	case config.BackendRedis:
		rdb, err := dialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		s := infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.Prefix),
			infra.WithStatsTTL(cfg.TTL),
			infra.WithStatsBucket(cfg.Bucket),
			infra.WithStatsTrackKeys(cfg.TrackKeys),
		)
		fn := func(ctx context.Context) (any, error) {
			total, err := s.Total(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"total": total}, nil
		}
		return s, fn, func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, func() {}, nil
	}
}

func dialRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

package infra

import (
	"context"
	"testing"
	"time"

	"divisors-gateway/middleware/ratelimit/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryStatsStore_CountsByRouteAndKey(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackKeys(true))
	ctx := context.Background()

	events := []domain.StatsEvent{
		{Key: "1.2.3.4", Allowed: true, Method: "GET", Route: "/api/v1/divisors/{n}"},
		{Key: "1.2.3.4", Allowed: false, Method: "GET", Route: "/api/v1/divisors/{n}"},
		{Key: "5.6.7.8", Allowed: true, Method: "GET", Route: "/api/v1/divisors/{n}"},
	}
	for _, ev := range events {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := s.Total(); got.Allowed != 2 || got.Denied != 1 {
		t.Fatalf("unexpected total: %+v", got)
	}

	snap := s.Snapshot()
	route := snap.ByRoute["GET /api/v1/divisors/{n}"]
	if route.Allowed != 2 || route.Denied != 1 {
		t.Fatalf("unexpected route counters: %+v", route)
	}
	if k := snap.ByKey["1.2.3.4"]; k.Allowed != 1 || k.Denied != 1 {
		t.Fatalf("unexpected key counters: %+v", k)
	}
}

func TestMemoryStatsStore_SnapshotWithoutKeys(t *testing.T) {
	s := NewMemoryStatsStore()
	_ = s.Record(context.Background(), domain.StatsEvent{Key: "k", Allowed: true, Method: "GET", Route: "/x"})

	snap := s.Snapshot()
	if snap.ByKey != nil {
		t.Fatalf("expected no per-key counters when tracking is off")
	}

	// cópia independente
	snap.ByRoute["GET /x"] = Counters{}
	if s.Snapshot().ByRoute["GET /x"].Allowed != 1 {
		t.Fatalf("expected snapshot to be a copy")
	}
}

func TestRedisStatsStore_RecordsCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	s := NewRedisStatsStore(rdb,
		WithStatsPrefix("test:stats:"),
		WithStatsTTL(time.Hour),
		WithStatsBucket("minute"),
		WithStatsTrackKeys(true),
	)
	ctx := context.Background()
	at := time.Date(2025, 3, 4, 5, 6, 0, 0, time.UTC)

	_ = s.Record(ctx, domain.StatsEvent{Key: "c1", Allowed: true, Method: "GET", Route: "/api/v1/divisors/{n}", At: at})
	if err := s.Record(ctx, domain.StatsEvent{Key: "c1", Allowed: false, Method: "GET", Route: "/api/v1/divisors/{n}", At: at}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := s.Total(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.Allowed != 1 || total.Denied != 1 {
		t.Fatalf("unexpected total: %+v", total)
	}

	if got := mr.HGet("test:stats:minute:202503040506", "denied"); got != "1" {
		t.Fatalf("expected minute bucket denied=1, got %q", got)
	}
	if got := mr.HGet("test:stats:route", "GET /api/v1/divisors/{n}:allowed"); got != "1" {
		t.Fatalf("expected route allowed=1, got %q", got)
	}
	if got := mr.HGet("test:stats:key:c1", "allowed"); got != "1" {
		t.Fatalf("expected key allowed=1, got %q", got)
	}
	if ttl := mr.TTL("test:stats:key:c1"); ttl != time.Hour {
		t.Fatalf("expected key ttl=1h, got %s", ttl)
	}
	if ttl := mr.TTL("test:stats:total"); ttl != 0 {
		t.Fatalf("expected total without ttl, got %s", ttl)
	}
}

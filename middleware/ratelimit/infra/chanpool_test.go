package infra

import (
	"context"
	"testing"
	"time"
)

func TestChanPool_TracksUsageAndBlocksWhenFull(t *testing.T) {
	p := NewChanPool(2)
	if p.Cap() != 2 || p.InUse() != 0 {
		t.Fatalf("expected cap=2 inUse=0, got cap=%d inUse=%d", p.Cap(), p.InUse())
	}

	r1, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire ok")
	}
	r2, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected second acquire ok")
	}
	if p.InUse() != 2 {
		t.Fatalf("expected inUse=2, got %d", p.InUse())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, ok := p.Acquire(ctx); ok {
		t.Fatalf("expected acquire to fail when pool is full")
	}

	r1()
	r2()
	if p.InUse() != 0 {
		t.Fatalf("expected inUse=0 after release, got %d", p.InUse())
	}
}

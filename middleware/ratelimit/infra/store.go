package infra

import (
	"context"
	"sync"
	"time"

	"divisors-gateway/middleware/ratelimit/domain"

	"golang.org/x/time/rate"
)

// Store mantém um limiter por chave, criado sob demanda, com limpeza periódica
// das chaves inativas.
//
// A estratégia vem do construtor: NewStore (token bucket, x/time/rate) ou
// NewFixedWindowStore (N permissões por janela, sem fila).
type Store struct {
	mu           sync.Mutex
	entries      map[domain.Key]*storeEntry
	newLimiter   func() domain.Limiter
	rps          float64
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type storeEntry struct {
	lim      domain.Limiter
	lastSeen time.Time
}

type StoreOption func(*Store)

func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *Store) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = d }
}

// NewStore cria um store de token bucket: rps tokens por segundo, rajada burst.
func NewStore(rps float64, burst int, opts ...StoreOption) *Store {
	lim := rate.Limit(rps)
	return newStore(func() domain.Limiter { return rate.NewLimiter(lim, burst) }, rps, burst, opts...)
}

// NewFixedWindowStore cria um store de janela fixa: limit requisições a cada window.
// Pedidos acima do limite são recusados na hora (sem fila).
func NewFixedWindowStore(limit int, window time.Duration, opts ...StoreOption) *Store {
	rps := 0.0
	if window > 0 {
		rps = float64(limit) / window.Seconds()
	}
	return newStore(func() domain.Limiter { return NewFixedWindow(limit, window) }, rps, limit, opts...)
}

func newStore(factory func() domain.Limiter, rps float64, burst int, opts ...StoreOption) *Store {
	s := &Store{
		entries:      make(map[domain.Key]*storeEntry),
		newLimiter:   factory,
		rps:          rps,
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) RPS() float64                { return s.rps }
func (s *Store) Burst() int                  { return s.burst }
func (s *Store) CleanupEvery() time.Duration { return s.cleanupEvery }

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get implementa domain.LimiterStore.
func (s *Store) Get(key domain.Key) domain.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := s.newLimiter()
	s.entries[key] = &storeEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *Store) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas periodicamente.
// Pare cancelando o contexto.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

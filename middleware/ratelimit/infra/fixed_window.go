package infra

import (
	"sync"
	"time"
)

// FixedWindow permite até limit chamadas por janela de duração window.
// A janela começa na primeira chamada e é reiniciada quando expira.
type FixedWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	start  time.Time
	count  int
	now    func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{limit: limit, window: window, now: time.Now}
}

// Allow implementa domain.Limiter.
func (f *FixedWindow) Allow() bool {
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.start.IsZero() || now.Sub(f.start) >= f.window {
		f.start = now
		f.count = 0
	}
	if f.count >= f.limit {
		return false
	}
	f.count++
	return true
}

// Remaining devolve quantas chamadas ainda cabem na janela atual.
func (f *FixedWindow) Remaining() int {
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.start.IsZero() || now.Sub(f.start) >= f.window {
		return f.limit
	}
	return f.limit - f.count
}

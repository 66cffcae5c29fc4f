package services

import (
	"sync"
	"time"

	"github.com/vairleon/ai-web-core/domain"
)

// RegisterThrottle implements domain.RegistrationThrottle with an in-memory
// per-address counter. Each successful increment schedules exactly one
// decrement after the rolling window. Best effort: state is process local
// and resets on restart.
type RegisterThrottle struct {
	mu      sync.Mutex
	counts  map[string]int
	pending map[*pendingDecrement]struct{}
	limit   int
	window  time.Duration
	stopped bool
}

// pendingDecrement is the handle for one scheduled decrement. The timer
// callback identifies itself by the handle, never by the timer pointer:
// the pointer is only assigned after AfterFunc returns and reading it from
// the callback would race with that write.
type pendingDecrement struct {
	timer *time.Timer
}

// NewRegisterThrottle creates a throttle allowing limit registrations per
// address within the window.
func NewRegisterThrottle(limit int, window time.Duration) *RegisterThrottle {
	return &RegisterThrottle{
		counts:  make(map[string]int),
		pending: make(map[*pendingDecrement]struct{}),
		limit:   limit,
		window:  window,
	}
}

// TryRegister implements domain.RegistrationThrottle
func (t *RegisterThrottle) TryRegister(addr string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return nil
	}
	if t.counts[addr] >= t.limit {
		return domain.ErrRateLimited
	}
	t.counts[addr]++

	p := &pendingDecrement{}
	p.timer = time.AfterFunc(t.window, func() {
		t.decrement(addr, p)
	})
	t.pending[p] = struct{}{}
	return nil
}

// decrement releases one unit of quota for addr. A missing or already-zero
// counter is tolerated silently.
func (t *RegisterThrottle) decrement(addr string, p *pendingDecrement) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, p)
	if t.stopped {
		return
	}
	if c, ok := t.counts[addr]; ok {
		if c <= 1 {
			delete(t.counts, addr)
		} else {
			t.counts[addr] = c - 1
		}
	}
}

// Stop cancels all pending decrements and clears the counters.
func (t *RegisterThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	for p := range t.pending {
		p.timer.Stop()
	}
	t.pending = make(map[*pendingDecrement]struct{})
	t.counts = make(map[string]int)
}

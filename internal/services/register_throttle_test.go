package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vairleon/ai-web-core/domain"
)

func TestRegisterThrottle_Limit(t *testing.T) {
	throttle := NewRegisterThrottle(3, time.Hour)
	defer throttle.Stop()

	for i := 0; i < 3; i++ {
		if err := throttle.TryRegister("10.0.0.1"); err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i+1, err)
		}
	}
	if err := throttle.TryRegister("10.0.0.1"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected rate limited on attempt 4, got %v", err)
	}

	// A different address carries its own quota.
	if err := throttle.TryRegister("10.0.0.2"); err != nil {
		t.Fatalf("unexpected error for second address: %v", err)
	}
}

func TestRegisterThrottle_WindowExpiry(t *testing.T) {
	throttle := NewRegisterThrottle(1, 20*time.Millisecond)
	defer throttle.Stop()

	if err := throttle.TryRegister("10.0.0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := throttle.TryRegister("10.0.0.1"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected rate limited inside the window, got %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	if err := throttle.TryRegister("10.0.0.1"); err != nil {
		t.Fatalf("expected quota back after the window, got %v", err)
	}
}

func TestRegisterThrottle_ConcurrentAttempts(t *testing.T) {
	const limit = 10
	throttle := NewRegisterThrottle(limit, time.Hour)
	defer throttle.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := throttle.TryRegister("10.0.0.1"); err == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("expected exactly %d allowed registrations, got %d", limit, allowed)
	}
}

func TestRegisterThrottle_RapidExpiry(t *testing.T) {
	// A near-zero window makes decrements fire while registrations are
	// still arriving; run with -race to catch unsynchronized timer state.
	throttle := NewRegisterThrottle(1000, time.Microsecond)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			addr := []string{"10.0.0.1", "10.0.0.2"}[n%2]
			for j := 0; j < 100; j++ {
				_ = throttle.TryRegister(addr)
			}
		}(i)
	}
	wg.Wait()

	time.Sleep(20 * time.Millisecond)
	throttle.Stop()

	// Every scheduled decrement either ran or was cancelled by Stop; the
	// throttle must be fully reset either way.
	if err := throttle.TryRegister("10.0.0.1"); err != nil {
		t.Fatalf("expected a reset throttle after stop, got %v", err)
	}
}

func TestRegisterThrottle_Stop(t *testing.T) {
	throttle := NewRegisterThrottle(1, time.Hour)

	if err := throttle.TryRegister("10.0.0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	throttle.Stop()

	// After Stop the throttle is inert and never rejects.
	if err := throttle.TryRegister("10.0.0.1"); err != nil {
		t.Fatalf("expected no error after stop, got %v", err)
	}
}

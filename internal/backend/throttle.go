package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out start times at least interval apart. Callers reserve a
// slot and sleep until it arrives.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

func (t *throttle) reserve() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := time.Now()
	if t.next.After(start) {
		start = t.next
	}
	t.next = start.Add(t.interval)
	return start
}

// wait blocks until the caller's reserved slot arrives or ctx is done.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return ctx.Err()
	}
	delay := time.Until(t.reserve())
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

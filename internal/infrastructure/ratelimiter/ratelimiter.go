package ratelimiter

import (
	"sync"
	"time"
)

// Limiter decides whether the source identified by key may proceed. When it
// may not, retryAfter says how long until it can.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow allows up to limit calls per key in each aligned window.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time

	stopOnce sync.Once
	done     chan struct{}
}

func NewFixedWindow(limit int, period time.Duration) *FixedWindow {
	rl := newFixedWindow(limit, period, time.Now)
	go rl.sweep(time.NewTicker(period))
	return rl
}

func newFixedWindow(limit int, period time.Duration, now func() time.Time) *FixedWindow {
	return &FixedWindow{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     now,
		done:    make(chan struct{}),
	}
}

func (rl *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{
			count:   1,
			resetAt: now.Truncate(rl.period).Add(rl.period),
		}
		return true, 0
	}

	if w.count >= rl.limit {
		return false, w.resetAt.Sub(now)
	}
	w.count++
	return true, 0
}

func (rl *FixedWindow) sweep(tick *time.Ticker) {
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			rl.expire()
		case <-rl.done:
			return
		}
	}
}

// expire forgets keys whose window has passed.
func (rl *FixedWindow) expire() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

func (rl *FixedWindow) Close() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

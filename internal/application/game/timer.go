package game

import (
	"sync"
	"time"
)

// AfterFunc schedules f to run once after d. The returned stop function
// cancels it if it has not fired yet.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// roundTimers holds at most one pending deadline per room. Firing is not
// exclusive with stop; the expiry handler re-checks the round epoch.
type roundTimers struct {
	mu     sync.Mutex
	after  AfterFunc
	timers map[string]func() bool
}

func newRoundTimers(after AfterFunc) *roundTimers {
	if after == nil {
		after = timeAfterFunc
	}
	return &roundTimers{
		after:  after,
		timers: make(map[string]func() bool),
	}
}

// arm replaces any pending deadline for code.
func (t *roundTimers) arm(code string, d time.Duration, fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if stop, ok := t.timers[code]; ok {
		stop()
	}
	t.timers[code] = t.after(d, fire)
}

func (t *roundTimers) stop(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if stop, ok := t.timers[code]; ok {
		stop()
		delete(t.timers, code)
	}
}

func (t *roundTimers) stopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for code, stop := range t.timers {
		stop()
		delete(t.timers, code)
	}
}

func (t *roundTimers) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Package refresh triggers periodic current-price fetches.
package refresh

import (
	"time"
)

// Timer is a repeating timer polled from a render loop. It only has two
// transitions: Start when the view mounts and Stop when it unmounts.
type Timer struct {
	interval time.Duration
	fire     func()

	running bool
	last    time.Time
}

func NewTimer(interval time.Duration, fire func()) *Timer {
	return &Timer{interval: interval, fire: fire}
}

func (t *Timer) Interval() time.Duration { return t.interval }

func (t *Timer) Running() bool { return t.running }

// Start arms the timer; the first tick is one interval after now.
func (t *Timer) Start(now time.Time) {
	t.running = true
	t.last = now
}

// Stop disarms the timer. Poll never fires after Stop.
func (t *Timer) Stop() {
	t.running = false
}

// Poll fires the callback when an interval has elapsed since the last tick
// and reports whether it did. Missed intervals collapse into one tick.
func (t *Timer) Poll(now time.Time) bool {
	if !t.running || t.interval <= 0 {
		return false
	}
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	if t.fire != nil {
		t.fire()
	}
	return true
}

// Remaining is the time until the next tick, for a visible countdown.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if !t.running {
		return 0
	}
	left := t.interval - now.Sub(t.last)
	if left < 0 {
		return 0
	}
	return left
}

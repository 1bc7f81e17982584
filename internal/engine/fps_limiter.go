package engine

import (
	"time"

	"cubescene/internal/config"
)

// spinWindow is how close to the deadline the limiter stops sleeping and
// busy-waits instead.
const spinWindow = 200 * time.Microsecond

// Clock is the time source of the engine.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	clock Clock
	next  time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter(clock Clock) *FPSLimiter {
	if clock == nil {
		clock = SystemClock
	}
	return &FPSLimiter{clock: clock}
}

// Start sets the reference point the first deadline is measured from.
func (f *FPSLimiter) Start(t time.Time) {
	f.next = t
}

// Wait blocks until one frame interval has passed since the previous
// deadline, as set by config.SetFPSLimit. Uses a hybrid sleep/spin approach
// for better precision on high FPS caps. Returns the time spent waiting.
func (f *FPSLimiter) Wait() time.Duration {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return 0
	}

	target := time.Second / time.Duration(limit)
	begin := f.clock.Now()

	if f.next.IsZero() {
		f.next = begin.Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.clock.Now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			f.clock.Sleep(remaining - spinWindow)
		}
	}

	now := f.clock.Now()
	// after a hitch, resync instead of rushing frames to catch up
	if late := now.Sub(f.next); late > target {
		f.next = now
	}
	return now.Sub(begin)
}

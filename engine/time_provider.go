package engine

import (
	"sync/atomic"
	"time"
)

// Clock supplies the time the scheduler derives tick deltas from
type Clock interface {
	Now() time.Time
}

// TimeProvider provides the real system time with monotonic clock readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when advanced; drives deterministic ticks in headless runs and tests
type ManualClock struct {
	base   time.Time
	offset atomic.Int64 // Nanoseconds since base
}

// NewManualClock creates a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{base: start}
}

// Now returns start plus every advance so far
func (c *ManualClock) Now() time.Time {
	return c.base.Add(time.Duration(c.offset.Load()))
}

// Advance moves the clock by d; negative d moves it back
func (c *ManualClock) Advance(d time.Duration) {
	c.offset.Add(int64(d))
}

// Package timer provides wall-clock stopwatches used by the simulation.
// Every timer reads time through a Clock so tests can drive it manually.
package timer

import (
	"sync"
	"time"
)

// Clock is a source of monotonic time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when Advance is called.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a manual clock starting at an arbitrary fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// AdvanceMillis moves the clock forward by ms milliseconds.
func (c *ManualClock) AdvanceMillis(ms int64) {
	c.Advance(time.Duration(ms) * time.Millisecond)
}

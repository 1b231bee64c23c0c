package testutil

import (
	"sync"
	"time"
)

// ManualClock is a hand-driven replacement for the platform's
// suspend-excluding clock source.
//
// It only advances when the test says so, which makes it behave exactly like
// the real clock across a system suspend: runtime timers keep firing while
// the ManualClock stands still. Tests use that to drive re-arm loops and
// normalization paths deterministically.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex,
// since the code under test reads the clock from other goroutines.
type ManualClock struct {
	mu   sync.Mutex
	sec  int64
	nsec int64
}

// NewManualClock creates a clock reading (0, 0).
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Read returns the current raw reading. Its signature matches the clock
// source injected into the suspendtime package.
func (c *ManualClock) Read() (sec, nsec int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sec, c.nsec
}

// Set forces the clock to a raw reading. The values are deliberately not
// validated: tests use Set to feed out-of-range readings (negative fields,
// nsec >= 1e9) through the normalization path.
func (c *ManualClock) Set(sec, nsec int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sec, c.nsec = sec, nsec
}

// Advance moves the clock forward by d. Negative d is ignored; a real
// suspend-excluding clock never runs backwards.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nsec += int64(d % time.Second)
	c.sec += int64(d / time.Second)
	if c.nsec >= int64(time.Second) {
		c.sec++
		c.nsec -= int64(time.Second)
	}
}

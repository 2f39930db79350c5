// Package clock lets orchestrators read time from a source tests can freeze
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant
type Clock interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time {
	return time.Now().UTC()
}

// New returns the wall clock in UTC
func New() Clock {
	return system{}
}

// Fixed is a Clock that only moves when told to. Listing expiry and
// activity timestamps are tested against it.
type Fixed struct {
	mu sync.Mutex
	at time.Time
}

// NewFixed returns a clock frozen at at
func NewFixed(at time.Time) *Fixed {
	return &Fixed{at: at}
}

// Now returns the frozen instant
func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// Advance moves the clock forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

// Package clock provides the time source used by hold timers and the routine scheduler,
// so tests can drive synthetic time.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current instant
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a Manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and returns the new instant
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Set jumps the clock to t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

package clock

import "time"

// Clock provides the current time. Injected so guess timestamps and
// session creation times are controllable in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

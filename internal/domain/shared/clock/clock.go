package clock

import "time"

// Clock is the time source injected into scheduling queries and
// issued-at defaulting, so tests can pin "now" without global time mutation.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now
type System struct{}

// Now returns the current wall-clock time
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock frozen at a single instant
type Fixed struct {
	Instant time.Time
}

// Now returns the frozen instant
func (f Fixed) Now() time.Time {
	return f.Instant
}

// NewFixed creates a Clock frozen at t
func NewFixed(t time.Time) Fixed {
	return Fixed{Instant: t}
}

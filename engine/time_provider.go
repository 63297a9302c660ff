package engine

import "time"

// TimeProvider is the clock the scheduler reads
type TimeProvider interface {
	Now() time.Time
}

// ManualTimeProvider is a clock the scheduler may move forward itself
// Advance and RunUntilIdle require one
type ManualTimeProvider interface {
	TimeProvider
	SetTime(t time.Time)
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
// Used for real-time operations (UI, input) that should not pause
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

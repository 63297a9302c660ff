package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a settable clock for tests and the headless simulator
// It only moves forward so scheduler deadlines stay ordered
type MockTimeProvider struct {
	epoch   time.Time
	elapsed atomic.Int64 // Nanoseconds since epoch
}

// NewMockTimeProvider creates a clock reading epoch until moved
func NewMockTimeProvider(epoch time.Time) *MockTimeProvider {
	return &MockTimeProvider{epoch: epoch}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.epoch.Add(m.Elapsed())
}

// Elapsed returns how far the clock moved since creation
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.elapsed.Load())
}

// SetTime jumps to t, targets at or before the current time are ignored
func (m *MockTimeProvider) SetTime(t time.Time) {
	target := int64(t.Sub(m.epoch))
	for {
		cur := m.elapsed.Load()
		if target <= cur || m.elapsed.CompareAndSwap(cur, target) {
			return
		}
	}
}

// Advance moves the clock forward by d, d <= 0 is ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.elapsed.Add(int64(d))
	}
}

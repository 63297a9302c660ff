package engine

import (
	"sync"
	"time"
)

// PausableClock provides pausable game time on top of a real time source
// While paused, Now is frozen so scheduled delays do not elapse
type PausableClock struct {
	mu sync.RWMutex

	real TimeProvider

	realStartTime time.Time // When clock was created (real time)
	gameStartTime time.Time // Game time epoch

	paused          bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running pausable clock over real, nil selects the monotonic clock
func NewPausableClock(real TimeProvider) *PausableClock {
	if real == nil {
		real = NewMonotonicTimeProvider()
	}
	now := real.Now()
	return &PausableClock{
		real:          real,
		realStartTime: now,
		gameStartTime: now,
	}
}

// Now returns current game time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.gameStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	// Game elapsed = real elapsed - total paused time
	realElapsed := pc.real.Now().Sub(pc.realStartTime)
	return pc.gameStartTime.Add(realElapsed - pc.totalPausedTime)
}

// RealTime returns the underlying real time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.real.Now()
}

// Pause stops game time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.real.Now()
}

// Resume continues game time advancement, no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.real.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.real.Now().Sub(pc.pauseStartTime)
	}
	return total
}

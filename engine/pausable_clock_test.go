package engine

import (
	"testing"
	"time"
)

func TestPausableClock_FreezesWhilePaused(t *testing.T) {
	real := NewMockTimeProvider(testEpoch)
	pc := NewPausableClock(real)

	real.Advance(100 * time.Millisecond)
	if got := pc.Now().Sub(testEpoch); got != 100*time.Millisecond {
		t.Fatalf("running elapsed = %v, want 100ms", got)
	}

	pc.Pause()
	pc.Pause() // idempotent
	real.Advance(time.Second)
	if got := pc.Now().Sub(testEpoch); got != 100*time.Millisecond {
		t.Errorf("paused elapsed = %v, want frozen at 100ms", got)
	}
	if !pc.IsPaused() {
		t.Error("IsPaused() = false during pause")
	}
	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("TotalPauseDuration() = %v, want 1s", got)
	}

	pc.Resume()
	real.Advance(50 * time.Millisecond)
	if got := pc.Now().Sub(testEpoch); got != 150*time.Millisecond {
		t.Errorf("resumed elapsed = %v, want 150ms", got)
	}
	if !pc.RealTime().Equal(testEpoch.Add(1150 * time.Millisecond)) {
		t.Errorf("RealTime() = %v, unaffected by pause expected", pc.RealTime())
	}
}

func TestMockTimeProvider_NeverMovesBackwards(t *testing.T) {
	m := NewMockTimeProvider(testEpoch)
	m.SetTime(testEpoch.Add(-time.Second))
	if !m.Now().Equal(testEpoch) {
		t.Errorf("SetTime moved clock backwards to %v", m.Now())
	}
	m.Advance(-time.Second)
	if !m.Now().Equal(testEpoch) {
		t.Errorf("Advance with negative duration moved clock to %v", m.Now())
	}
}

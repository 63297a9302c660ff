package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var (
	_ ManualTimeProvider = (*MockTimeProvider)(nil)
	_ TimeProvider       = (*MonotonicTimeProvider)(nil)
	_ TimeProvider       = (*PausableClock)(nil)
)

func TestMonotonicTimeProvider_Advances(t *testing.T) {
	p := NewMonotonicTimeProvider()
	t1 := p.Now()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, p.Now().Sub(t1), 5*time.Millisecond)
}

func TestMockTimeProvider_SetAndAdvance(t *testing.T) {
	m := NewMockTimeProvider(testEpoch)
	assert.Equal(t, testEpoch, m.Now())

	m.SetTime(testEpoch.Add(time.Hour))
	m.Advance(30 * time.Minute)
	m.Advance(15 * time.Minute)
	assert.Equal(t, testEpoch.Add(105*time.Minute), m.Now())
}

func TestMockTimeProvider_ConcurrentAdvance(t *testing.T) {
	m := NewMockTimeProvider(testEpoch)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Advance(time.Millisecond)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = m.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, testEpoch.Add(250*time.Millisecond), m.Now())
}

func TestScheduler_PausedClockHoldsTimers(t *testing.T) {
	real := NewMockTimeProvider(testEpoch)
	pc := NewPausableClock(real)
	s := NewScheduler(pc, zerolog.Nop())
	defer s.Stop()

	fired := false
	s.Go("timer", func(task *Task) {
		task.Delay(100 * time.Millisecond)
		fired = true
	})
	s.Pump()

	pc.Pause()
	real.Advance(time.Second)
	s.Pump()
	assert.False(t, fired, "game time is frozen while paused")

	pc.Resume()
	real.Advance(100 * time.Millisecond)
	s.Pump()
	assert.True(t, fired)
}

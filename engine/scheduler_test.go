package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T) (*Scheduler, *MockTimeProvider) {
	t.Helper()
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock, zerolog.Nop())
	t.Cleanup(s.Stop)
	return s, clock
}

func TestScheduler_GoRunsOnPump(t *testing.T) {
	s, _ := newTestScheduler(t)

	ran := false
	s.Go("once", func(*Task) { ran = true })
	assert.False(t, ran, "tasks must not run before a pump")

	steps := s.Pump()
	assert.True(t, ran)
	assert.Equal(t, 1, steps)
	assert.Equal(t, 0, s.Live())
	assert.True(t, s.Idle())
}

func TestScheduler_DelayOrdering(t *testing.T) {
	s, clock := newTestScheduler(t)

	var order []string
	s.Go("slow", func(task *Task) {
		task.Delay(30 * time.Millisecond)
		order = append(order, "slow")
	})
	s.Go("fast", func(task *Task) {
		task.Delay(10 * time.Millisecond)
		order = append(order, "fast")
	})
	s.Go("tie", func(task *Task) {
		task.Delay(30 * time.Millisecond)
		order = append(order, "tie")
	})

	s.Advance(5 * time.Millisecond)
	assert.Empty(t, order)

	s.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"fast"}, order)

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"fast", "slow", "tie"}, order, "equal deadlines wake in registration order")
	assert.Equal(t, testEpoch.Add(110*time.Millisecond), clock.Now())
}

func TestScheduler_DelayObservesClock(t *testing.T) {
	s, _ := newTestScheduler(t)

	var stamps []time.Duration
	s.Go("ticker", func(task *Task) {
		for i := 0; i < 3; i++ {
			task.Delay(25 * time.Millisecond)
			stamps = append(stamps, task.Now().Sub(testEpoch))
		}
	})

	s.Advance(time.Second)
	assert.Equal(t, []time.Duration{25 * time.Millisecond, 50 * time.Millisecond, 75 * time.Millisecond}, stamps)
}

func TestScheduler_YieldInterleaves(t *testing.T) {
	s, _ := newTestScheduler(t)

	var order []string
	for _, name := range []string{"a", "b"} {
		name := name
		s.Go(name, func(task *Task) {
			order = append(order, name+"1")
			task.Yield()
			order = append(order, name+"2")
		})
	}

	s.Pump()
	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, order)
}

func TestScheduler_GroupWait(t *testing.T) {
	s, _ := newTestScheduler(t)

	var joinedAt time.Duration
	var children int
	s.Go("parent", func(task *Task) {
		g := task.Scheduler().NewGroup()
		for _, d := range []time.Duration{10, 30, 20} {
			d := d * time.Millisecond
			g.Go("child", func(c *Task) {
				c.Delay(d)
				children++
			})
		}
		task.Wait(g)
		joinedAt = task.Now().Sub(testEpoch)
	})

	s.Advance(15 * time.Millisecond)
	assert.Equal(t, 1, children)
	assert.Zero(t, joinedAt)

	s.Advance(time.Second)
	assert.Equal(t, 3, children)
	assert.Equal(t, 30*time.Millisecond, joinedAt)
	assert.Equal(t, 0, s.Live())
}

func TestScheduler_WaitOnEmptyGroupReturns(t *testing.T) {
	s, _ := newTestScheduler(t)

	done := false
	s.Go("parent", func(task *Task) {
		task.Wait(task.Scheduler().NewGroup())
		done = true
	})
	s.Pump()
	assert.True(t, done)
}

func TestScheduler_NestedGroupChildren(t *testing.T) {
	s, _ := newTestScheduler(t)

	var g *Group
	joined := false
	s.Go("parent", func(task *Task) {
		g = task.Scheduler().NewGroup()
		g.Go("outer", func(c *Task) {
			c.Delay(10 * time.Millisecond)
			// Children may add siblings before the group drains
			g.Go("inner", func(i *Task) {
				i.Delay(10 * time.Millisecond)
			})
		})
		task.Wait(g)
		joined = true
	})

	s.Advance(15 * time.Millisecond)
	assert.False(t, joined)
	require.NotNil(t, g)
	assert.Equal(t, 1, g.Pending())

	s.Advance(10 * time.Millisecond)
	assert.True(t, joined)
	assert.Equal(t, 2, g.Started())
}

func TestScheduler_PanicIsContained(t *testing.T) {
	s, _ := newTestScheduler(t)

	afterPanic := false
	s.Go("parent", func(task *Task) {
		g := task.Scheduler().NewGroup()
		g.Go("bad", func(c *Task) {
			c.Delay(time.Millisecond)
			panic("boom")
		})
		task.Wait(g)
		afterPanic = true
	})

	s.Advance(10 * time.Millisecond)
	assert.True(t, afterPanic, "a panicking child still releases its group")
	assert.Equal(t, 0, s.Live())
}

func TestScheduler_OnDone(t *testing.T) {
	s, _ := newTestScheduler(t)

	calls := 0
	task := s.Go("work", func(task *Task) { task.Delay(time.Millisecond) })
	task.OnDone(func() { calls++ })

	s.Advance(time.Millisecond)
	assert.True(t, task.Done())
	assert.Equal(t, 1, calls)

	task.OnDone(func() { calls++ })
	assert.Equal(t, 2, calls, "registering on a finished task runs immediately")
}

func TestScheduler_RunUntilIdle(t *testing.T) {
	s, clock := newTestScheduler(t)

	count := 0
	s.Go("loop", func(task *Task) {
		for i := 0; i < 5; i++ {
			task.Delay(time.Second)
			count++
		}
	})

	require.True(t, s.RunUntilIdle(100))
	assert.Equal(t, 5, count)
	assert.Equal(t, testEpoch.Add(5*time.Second), clock.Now())
}

func TestScheduler_StopReleasesSuspendedTasks(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock, zerolog.Nop())

	finished := false
	s.Go("sleeper", func(task *Task) {
		task.Delay(time.Hour)
		finished = true
	})
	s.Pump()

	s.Stop()
	assert.Equal(t, 0, s.Pump())
	assert.False(t, finished)

	late := s.Go("late", func(*Task) {})
	assert.True(t, late.Done(), "tasks queued after stop never run")
}

func TestScheduler_RealClockAdvanceOnlyPumps(t *testing.T) {
	s := NewScheduler(NewMonotonicTimeProvider(), zerolog.Nop())
	defer s.Stop()

	ran := false
	s.Go("now", func(*Task) { ran = true })
	s.Advance(time.Hour)
	assert.True(t, ran)
}

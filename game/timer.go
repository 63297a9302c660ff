package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/engine"
)

// Timer is the session countdown, a scheduler task sleeping until the deadline
// Extensions move the deadline; the task re-sleeps when it wakes early
type Timer struct {
	sched    *engine.Scheduler
	log      zerolog.Logger
	deadline time.Time
	running  bool
	expired  bool
	onExpire func()
}

func newTimer(sched *engine.Scheduler, log zerolog.Logger, onExpire func()) *Timer {
	return &Timer{sched: sched, log: log, onExpire: onExpire}
}

// start arms the countdown for d on the current scheduler
func (t *Timer) start(d time.Duration) {
	t.deadline = t.sched.Now().Add(d)
	t.running = true
	t.expired = false
	t.sched.Go("timer", t.run)
}

func (t *Timer) run(task *engine.Task) {
	for {
		left := t.deadline.Sub(task.Now())
		if left <= 0 {
			break
		}
		task.Delay(left)
	}
	t.running = false
	t.expired = true
	t.log.Info().Msg("session time expired")
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Extend adds seconds to a running countdown
func (t *Timer) Extend(seconds int) {
	if !t.running || seconds <= 0 {
		return
	}
	t.deadline = t.deadline.Add(time.Duration(seconds) * time.Second)
	t.log.Debug().Int("seconds", seconds).Time("deadline", t.deadline).Msg("time extended")
}

// Remaining returns time left, zero once expired
func (t *Timer) Remaining() time.Duration {
	if !t.running {
		return 0
	}
	left := t.deadline.Sub(t.sched.Now())
	if left < 0 {
		return 0
	}
	return left
}

func (t *Timer) Expired() bool {
	return t.expired
}

package engine

import (
	"container/heap"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TaskFunc is the body of a cooperative task
type TaskFunc func(t *Task)

// Scheduler runs cooperative tasks one at a time
//
// Architecture:
//   - Each task owns a goroutine but only the baton holder runs; the pump caller blocks
//     while a task runs and tasks block while the pump caller runs
//   - Suspension points: Task.Delay, Task.Yield, Task.Wait
//   - Ready tasks run FIFO; timers wake in (deadline, registration) order
//   - Shared game state needs no locks as long as it is touched only from tasks or the pump caller
type Scheduler struct {
	clock TimeProvider
	log   zerolog.Logger

	mu      sync.Mutex
	ready   []*Task
	timers  timerHeap
	seq     uint64
	live    int // Started or queued tasks not yet finished
	pumping bool
	stopped bool

	yield    chan struct{} // Task → pump handoff
	quit     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler reading time from clock
func NewScheduler(clock TimeProvider, logger zerolog.Logger) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Scheduler{
		clock: clock,
		log:   logger.With().Str("component", "scheduler").Logger(),
		yield: make(chan struct{}),
		quit:  make(chan struct{}),
	}
}

// Now returns the scheduler clock time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Clock returns the time provider driving the scheduler
func (s *Scheduler) Clock() TimeProvider {
	return s.clock
}

// Go queues a new task, it first runs on the next pump
// Safe to call from inside a running task
func (s *Scheduler) Go(name string, fn TaskFunc) *Task {
	t := &Task{
		s:      s,
		name:   name,
		fn:     fn,
		resume: make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		t.done = true
		return t
	}
	s.live++
	s.ready = append(s.ready, t)
	return t
}

// NewGroup creates an empty task group bound to this scheduler
func (s *Scheduler) NewGroup() *Group {
	return &Group{s: s}
}

// Pump runs every ready and due task until nothing is runnable at the current time
// Returns the number of task steps executed; nested calls from inside a task return 0
func (s *Scheduler) Pump() int {
	s.mu.Lock()
	if s.pumping || s.stopped {
		s.mu.Unlock()
		return 0
	}
	s.pumping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pumping = false
		s.mu.Unlock()
	}()

	steps := 0
	for {
		t := s.next()
		if t == nil {
			return steps
		}
		if !s.step(t) {
			return steps
		}
		steps++
	}
}

// next pops the next runnable task, ready queue first, then the earliest due timer
func (s *Scheduler) next() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	if len(s.ready) > 0 {
		t := s.ready[0]
		s.ready[0] = nil
		s.ready = s.ready[1:]
		return t
	}
	if len(s.timers) > 0 && !s.timers[0].wake.After(s.clock.Now()) {
		return heap.Pop(&s.timers).(*Task)
	}
	return nil
}

// step hands the baton to t and blocks until it suspends or finishes
func (s *Scheduler) step(t *Task) bool {
	if !t.started {
		t.started = true
		go t.run()
	} else {
		select {
		case t.resume <- struct{}{}:
		case <-s.quit:
			return false
		}
	}

	select {
	case <-s.yield:
		return true
	case <-s.quit:
		return false
	}
}

// NextWake returns the earliest pending timer deadline
func (s *Scheduler) NextWake() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	return s.timers[0].wake, true
}

// Advance moves a manual clock forward by d, stopping at every timer deadline on the way
// With a real clock it only pumps
func (s *Scheduler) Advance(d time.Duration) {
	mc, ok := s.clock.(ManualTimeProvider)
	if !ok {
		s.Pump()
		return
	}

	target := mc.Now().Add(d)
	s.Pump()
	for {
		wake, ok := s.NextWake()
		if !ok || wake.After(target) {
			break
		}
		mc.SetTime(wake)
		s.Pump()
	}
	mc.SetTime(target)
	s.Pump()
}

// RunUntilIdle advances a manual clock until no task is queued or sleeping
// Tasks suspended in Wait on a group that never drains are left parked
// Returns false when maxSteps timer stops were not enough
func (s *Scheduler) RunUntilIdle(maxSteps int) bool {
	mc, ok := s.clock.(ManualTimeProvider)
	if !ok {
		s.Pump()
		return s.Idle()
	}

	s.Pump()
	for i := 0; i < maxSteps; i++ {
		wake, ok := s.NextWake()
		if !ok {
			return true
		}
		mc.SetTime(wake)
		s.Pump()
	}
	_, pending := s.NextWake()
	return !pending
}

// Idle reports whether nothing is ready or sleeping
func (s *Scheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ready) == 0 && len(s.timers) == 0
}

// Live returns the number of tasks that have not finished
func (s *Scheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Stop releases every suspended task goroutine, used at shutdown only
// Suspended tasks exit without running the rest of their body
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.ready = nil
		s.timers = nil
		s.mu.Unlock()
		close(s.quit)
	})
}

func (s *Scheduler) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Task is a cooperative unit of work with explicit suspension points
type Task struct {
	s      *Scheduler
	name   string
	fn     TaskFunc
	resume chan struct{}

	wake  time.Time
	seq   uint64
	index int // Heap index while sleeping

	started bool
	done    bool
	onDone  []func()
}

// Name returns the task label used in logs
func (t *Task) Name() string {
	return t.name
}

// Done reports whether the task body has returned
func (t *Task) Done() bool {
	return t.done
}

// Now returns the scheduler clock time
func (t *Task) Now() time.Time {
	return t.s.clock.Now()
}

// Scheduler returns the scheduler running t
func (t *Task) Scheduler() *Scheduler {
	return t.s
}

// OnDone registers fn to run, on the scheduler baton, when the task finishes
// Runs immediately if the task already finished
func (t *Task) OnDone(fn func()) {
	if t.done {
		fn()
		return
	}
	t.onDone = append(t.onDone, fn)
}

// Delay suspends the task until the clock reaches now+d, d <= 0 yields
func (t *Task) Delay(d time.Duration) {
	if d <= 0 {
		t.Yield()
		return
	}

	s := t.s
	s.mu.Lock()
	s.seq++
	t.seq = s.seq
	t.wake = s.clock.Now().Add(d)
	heap.Push(&s.timers, t)
	s.mu.Unlock()

	t.suspend()
}

// Yield requeues the task behind every ready task
func (t *Task) Yield() {
	s := t.s
	s.mu.Lock()
	s.ready = append(s.ready, t)
	s.mu.Unlock()

	t.suspend()
}

// Wait suspends the task until every task in g has finished
func (t *Task) Wait(g *Group) {
	if g.pending == 0 {
		return
	}
	g.waiters = append(g.waiters, t)
	t.suspend()
}

// suspend returns the baton to the pump and blocks until resumed
func (t *Task) suspend() {
	select {
	case t.s.yield <- struct{}{}:
	case <-t.s.quit:
		runtime.Goexit()
	}
	select {
	case <-t.resume:
	case <-t.s.quit:
		runtime.Goexit()
	}
}

// run is the task goroutine body
func (t *Task) run() {
	defer func() {
		if r := recover(); r != nil {
			t.s.log.Error().
				Str("task", t.name).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("task panicked")
		}

		if t.s.isStopped() {
			return
		}
		t.finish()

		select {
		case t.s.yield <- struct{}{}:
		case <-t.s.quit:
		}
	}()

	t.fn(t)
}

// finish marks the task done and runs completion callbacks while holding the baton
func (t *Task) finish() {
	t.done = true

	s := t.s
	s.mu.Lock()
	s.live--
	s.mu.Unlock()

	callbacks := t.onDone
	t.onDone = nil
	for _, fn := range callbacks {
		fn()
	}
}

// wakeAll moves tasks to the ready queue
func (s *Scheduler) wakeAll(tasks []*Task) {
	if len(tasks) == 0 {
		return
	}
	s.mu.Lock()
	s.ready = append(s.ready, tasks...)
	s.mu.Unlock()
}

// timerHeap orders sleeping tasks by deadline then registration sequence
type timerHeap []*Task

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].wake.Equal(h[j].wake) {
		return h[i].seq < h[j].seq
	}
	return h[i].wake.Before(h[j].wake)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

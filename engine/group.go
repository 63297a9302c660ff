package engine

// Group counts a set of child tasks so a parent can await them with Task.Wait
// Like the scheduler state it is only touched while holding the baton
type Group struct {
	s       *Scheduler
	pending int
	started int
	waiters []*Task
}

// Go starts a child task in the group
func (g *Group) Go(name string, fn TaskFunc) *Task {
	g.pending++
	g.started++
	t := g.s.Go(name, fn)
	if t.done {
		// Scheduler stopped, the task will never run
		g.release()
		return t
	}
	t.OnDone(g.release)
	return t
}

// Pending returns the number of children still running
func (g *Group) Pending() int {
	return g.pending
}

// Started returns the number of children ever started in the group
func (g *Group) Started() int {
	return g.started
}

func (g *Group) release() {
	g.pending--
	if g.pending > 0 {
		return
	}
	waiters := g.waiters
	g.waiters = nil
	g.s.wakeAll(waiters)
}

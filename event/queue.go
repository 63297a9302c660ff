package event

import (
	"sync"
	"time"

	"github.com/lixenwraith/tile-chain/parameter"
)

// EventQueue is a bounded FIFO ring for outbound game events
// Producers are scheduler tasks, the consumer is the front-end loop; both may live on different goroutines
// Overflow: the oldest unread event is overwritten and counted in Dropped
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	start   int // Index of the oldest unread event
	size    int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Emit pushes an event stamped with at
func (eq *EventQueue) Emit(t EventType, payload any, at time.Time) {
	eq.Push(GameEvent{Type: t, Payload: payload, Time: at})
}

// Push appends event, evicting the oldest when the ring is full
func (eq *EventQueue) Push(event GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.size == parameter.EventQueueSize {
		eq.ring[eq.start] = event
		eq.start = (eq.start + 1) & parameter.EventBufferMask
		eq.dropped++
		return
	}
	eq.ring[(eq.start+eq.size)&parameter.EventBufferMask] = event
	eq.size++
}

// Consume drains every pending event in FIFO order, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.size == 0 {
		return nil
	}
	out := make([]GameEvent, eq.size)
	for i := range out {
		idx := (eq.start + i) & parameter.EventBufferMask
		out[i] = eq.ring[idx]
		eq.ring[idx] = GameEvent{} // Release payload references
	}
	eq.start, eq.size = 0, 0
	return out
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.size
}

// Dropped returns the number of events lost to overflow
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}

package event

import "github.com/lixenwraith/gem-drift/parameter"

// EventQueue buffers events emitted during a frame
// Single producer (simulation) and single consumer (host loop) on the same
// goroutine, so no synchronization is involved
type EventQueue struct {
	events []GameEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, parameter.EventQueueSize)}
}

// Push appends an event
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events = append(eq.events, ev)
}

// Consume returns all pending events in FIFO order and empties the queue
// The returned slice is owned by the caller
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.events) == 0 {
		return nil
	}
	out := make([]GameEvent, len(eq.events))
	copy(out, eq.events)
	eq.events = eq.events[:0]
	return out
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	return len(eq.events)
}

// Clear drops pending events
func (eq *EventQueue) Clear() {
	eq.events = eq.events[:0]
}

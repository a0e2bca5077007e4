package ecs

import (
	"errors"
	"fmt"
)

// MaxDrainEvents bounds how many events one Drain may dispatch. Handlers that
// keep emitting events past this are treated as a loop.
const MaxDrainEvents = 2048

// ErrEventStorm is returned by Drain when MaxDrainEvents is exceeded.
var ErrEventStorm = errors.New("ecs: event drain exceeded limit")

// EventType tags an event. Callers define their own constants.
type EventType int

// Event is a tagged message queued during a tick.
type Event struct {
	Type    EventType
	Payload any
}

// Handler reacts to one event.
type Handler func(Event) error

// EventQueue buffers events emitted by systems and dispatches them in FIFO
// order when drained.
type EventQueue struct {
	pending  []Event
	handlers map[EventType][]Handler
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers h for events of type t. Handlers run in registration order.
func (q *EventQueue) Subscribe(t EventType, h Handler) {
	q.handlers[t] = append(q.handlers[t], h)
}

// Emit queues an event for the next Drain.
func (q *EventQueue) Emit(t EventType, payload any) {
	q.pending = append(q.pending, Event{Type: t, Payload: payload})
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Drain dispatches queued events, including ones emitted by handlers while
// draining. It stops at the first handler error; undelivered events stay queued.
func (q *EventQueue) Drain() error {
	dispatched := 0
	for len(q.pending) > 0 {
		if dispatched >= MaxDrainEvents {
			return fmt.Errorf("%w (%d events)", ErrEventStorm, dispatched)
		}
		ev := q.pending[0]
		q.pending = q.pending[1:]
		dispatched++
		for _, h := range q.handlers[ev.Type] {
			if err := h(ev); err != nil {
				return fmt.Errorf("ecs: handle event %d: %w", ev.Type, err)
			}
		}
	}
	q.pending = nil
	return nil
}

package ecs

import (
	"fmt"
	"sort"
)

// Priority bounds. Lower values run first.
const (
	PriorityFirst = 0
	// PriorityLate and above run after the event drain and destroy flush.
	PriorityLate = 900
)

// System is one stage of a tick.
type System interface {
	Name() string
	Priority() int
	Update() error
}

type funcSystem struct {
	name     string
	priority int
	fn       func() error
}

func (s funcSystem) Name() string  { return s.name }
func (s funcSystem) Priority() int { return s.priority }
func (s funcSystem) Update() error { return s.fn() }

// NewSystem wraps fn as a System.
func NewSystem(name string, priority int, fn func() error) System {
	return funcSystem{name: name, priority: priority, fn: fn}
}

// Scheduler runs registered systems once per Tick in priority order.
//
// A tick runs every system below PriorityLate, drains the event queue,
// flushes deferred destruction, then runs the late systems. A system error
// aborts the remainder of that tick.
type Scheduler struct {
	world   *World
	events  *EventQueue
	systems []System
	ticks   uint64
}

// NewScheduler creates a scheduler bound to a world and its event queue.
func NewScheduler(w *World, q *EventQueue) *Scheduler {
	return &Scheduler{world: w, events: q}
}

// Register adds systems. Systems with equal priority keep registration order.
func (s *Scheduler) Register(systems ...System) {
	s.systems = append(s.systems, systems...)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
}

// Systems returns the registered system names in run order.
func (s *Scheduler) Systems() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.Name()
	}
	return names
}

// Ticks returns how many ticks completed without error.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Tick runs one full simulation step.
func (s *Scheduler) Tick() error {
	late := len(s.systems)
	for i, sys := range s.systems {
		if sys.Priority() >= PriorityLate {
			late = i
			break
		}
		if err := sys.Update(); err != nil {
			return fmt.Errorf("ecs: system %s: %w", sys.Name(), err)
		}
	}

	if err := s.events.Drain(); err != nil {
		return err
	}
	s.world.Flush()

	for _, sys := range s.systems[late:] {
		if err := sys.Update(); err != nil {
			return fmt.Errorf("ecs: system %s: %w", sys.Name(), err)
		}
	}

	s.ticks++
	return nil
}

// Package ecs is a small entity/component store for tick-driven simulations.
//
// Entities are generational handles into an arena; components live in typed
// tables (Store[T]) created on first use. Queries filter entities holding a
// set of components with an optional predicate and return them in insertion
// order. Destruction is deferred until Flush so systems can iterate query
// results while destroying entities.
package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrMissingSingleton is returned when a record expected to exist exactly once is absent.
	ErrMissingSingleton = errors.New("ecs: singleton missing")
	// ErrNotSingleton is returned when a record expected to exist once matches several entities.
	ErrNotSingleton = errors.New("ecs: more than one match for singleton")
	// ErrDeadEntity is returned when an operation targets a destroyed entity.
	ErrDeadEntity = errors.New("ecs: entity is not alive")
)

// Entity is a generational handle. The zero value never refers to a live entity.
type Entity struct {
	index uint32
	gen   uint32
}

// IsZero reports whether e is the zero handle.
func (e Entity) IsZero() bool {
	return e.gen == 0
}

// String returns a debug representation such as "e12v3".
func (e Entity) String() string {
	return fmt.Sprintf("e%dv%d", e.index, e.gen)
}

// componentTable is the type-erased view of a Store used for cleanup.
type componentTable interface {
	remove(e Entity)
}

// World owns the entity arena and all component tables.
type World struct {
	gens    []uint32 // current generation per slot
	alive   []bool
	free    []uint32
	tables  map[reflect.Type]componentTable
	pending []Entity
	doomed  map[Entity]struct{}
	count   int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		tables: make(map[reflect.Type]componentTable),
		doomed: make(map[Entity]struct{}),
	}
}

// Create allocates a new entity handle, reusing freed slots.
func (w *World) Create() Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.gens))
		w.gens = append(w.gens, 0)
		w.alive = append(w.alive, false)
	}
	w.gens[idx]++
	w.alive[idx] = true
	w.count++
	return Entity{index: idx, gen: w.gens[idx]}
}

// Alive reports whether e refers to a live entity (including ones pending destruction).
func (w *World) Alive(e Entity) bool {
	if e.IsZero() || int(e.index) >= len(w.gens) {
		return false
	}
	return w.alive[e.index] && w.gens[e.index] == e.gen
}

// Destroy schedules e for removal at the next Flush. Destroying an entity
// twice, or one that is already gone, is a no-op.
func (w *World) Destroy(e Entity) {
	if !w.Alive(e) {
		return
	}
	if _, ok := w.doomed[e]; ok {
		return
	}
	w.doomed[e] = struct{}{}
	w.pending = append(w.pending, e)
}

// Doomed reports whether e has been scheduled for destruction.
func (w *World) Doomed(e Entity) bool {
	_, ok := w.doomed[e]
	return ok
}

// Flush removes every entity scheduled by Destroy and returns how many were removed.
func (w *World) Flush() int {
	n := len(w.pending)
	for _, e := range w.pending {
		for _, t := range w.tables {
			t.remove(e)
		}
		w.alive[e.index] = false
		w.free = append(w.free, e.index)
		w.count--
		delete(w.doomed, e)
	}
	w.pending = w.pending[:0]
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.count
}

// GetStore returns the component table for T, creating it on first use.
// The returned pointer stays valid for the world's lifetime.
func GetStore[T any](w *World) *Store[T] {
	key := reflect.TypeFor[T]()
	if t, ok := w.tables[key]; ok {
		return t.(*Store[T])
	}
	s := newStore[T](w)
	w.tables[key] = s
	return s
}

// Add attaches v to e, replacing any existing T component.
func Add[T any](w *World, e Entity, v T) error {
	if !w.Alive(e) {
		return fmt.Errorf("ecs: add %s to %s: %w", reflect.TypeFor[T](), e, ErrDeadEntity)
	}
	GetStore[T](w).Set(e, v)
	return nil
}

// Get returns e's T component.
func Get[T any](w *World, e Entity) (*T, bool) {
	return GetStore[T](w).Get(e)
}

// Has reports whether e holds a T component.
func Has[T any](w *World, e Entity) bool {
	return GetStore[T](w).Has(e)
}

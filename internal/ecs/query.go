package ecs

import (
	"fmt"
	"reflect"
)

// Row1 is a query match for one component.
type Row1[A any] struct {
	Entity Entity
	A      *A
}

// Row2 is a query match for two components.
type Row2[A, B any] struct {
	Entity Entity
	A      *A
	B      *B
}

// Row3 is a query match for three components.
type Row3[A, B, C any] struct {
	Entity Entity
	A      *A
	B      *B
	C      *C
}

// Query1 returns every entity holding A for which pred returns true.
// A nil pred matches all. Entities scheduled for destruction are skipped.
// Results follow A's row order.
func Query1[A any](w *World, pred func(Entity, *A) bool) []Row1[A] {
	sa := GetStore[A](w)
	var out []Row1[A]
	for i, e := range sa.entities {
		if w.Doomed(e) {
			continue
		}
		a := sa.values[i]
		if pred != nil && !pred(e, a) {
			continue
		}
		out = append(out, Row1[A]{Entity: e, A: a})
	}
	return out
}

// Query2 returns every entity holding both A and B for which pred returns true.
func Query2[A, B any](w *World, pred func(Entity, *A, *B) bool) []Row2[A, B] {
	sa := GetStore[A](w)
	sb := GetStore[B](w)
	var out []Row2[A, B]
	for i, e := range sa.entities {
		if w.Doomed(e) {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		a := sa.values[i]
		if pred != nil && !pred(e, a, b) {
			continue
		}
		out = append(out, Row2[A, B]{Entity: e, A: a, B: b})
	}
	return out
}

// Query3 returns every entity holding A, B and C for which pred returns true.
func Query3[A, B, C any](w *World, pred func(Entity, *A, *B, *C) bool) []Row3[A, B, C] {
	sa := GetStore[A](w)
	sb := GetStore[B](w)
	sc := GetStore[C](w)
	var out []Row3[A, B, C]
	for i, e := range sa.entities {
		if w.Doomed(e) {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		a := sa.values[i]
		if pred != nil && !pred(e, a, b, c) {
			continue
		}
		out = append(out, Row3[A, B, C]{Entity: e, A: a, B: b, C: c})
	}
	return out
}

// Single returns the only entity holding A that satisfies pred.
func Single[A any](w *World, pred func(Entity, *A) bool) (Entity, *A, error) {
	rows := Query1(w, pred)
	switch len(rows) {
	case 0:
		return Entity{}, nil, fmt.Errorf("%w: %s", ErrMissingSingleton, reflect.TypeFor[A]())
	case 1:
		return rows[0].Entity, rows[0].A, nil
	default:
		return Entity{}, nil, fmt.Errorf("%w: %s (%d matches)", ErrNotSingleton, reflect.TypeFor[A](), len(rows))
	}
}

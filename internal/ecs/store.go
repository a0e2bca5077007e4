package ecs

// Store is the component table for one component type. Rows keep the order
// in which entities first received the component; removal preserves the
// relative order of the remaining rows.
//
// Values are heap-allocated so pointers returned by Get stay valid after
// other rows are added or removed.
type Store[T any] struct {
	world    *World
	entities []Entity
	values   []*T
	index    map[Entity]int
}

func newStore[T any](w *World) *Store[T] {
	return &Store[T]{
		world: w,
		index: make(map[Entity]int),
	}
}

// Set stores v for e, overwriting an existing value in place.
func (s *Store[T]) Set(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		*s.values[i] = v
		return
	}
	val := v
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, &val)
}

// Get returns the value for e.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

// Has reports whether e has a row.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *Store[T]) remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	copy(s.entities[i:], s.entities[i+1:])
	s.entities = s.entities[:len(s.entities)-1]
	copy(s.values[i:], s.values[i+1:])
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	delete(s.index, e)
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j]] = j
	}
}

// Len returns the number of rows, including rows of entities pending destruction.
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Entities returns a copy of the entities holding T, in row order.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

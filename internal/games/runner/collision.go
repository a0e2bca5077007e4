package runner

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// ErrCorruptCollision is returned when a reported collision no longer
// resolves to an entity on the expected layer.
var ErrCorruptCollision = errors.New("collision references missing entity")

// Collision is a pair of active colliders occupying the same cell.
type Collision struct {
	A, B           ecs.Entity
	LayerA, LayerB CollisionLayer
}

// between reports whether the collision joins layers l1 and l2, in either order.
func (c Collision) between(l1, l2 CollisionLayer) bool {
	return (c.LayerA == l1 && c.LayerB == l2) || (c.LayerA == l2 && c.LayerB == l1)
}

// other returns the entity of the pair on layer l.
func (c Collision) other(l CollisionLayer) (ecs.Entity, bool) {
	switch l {
	case c.LayerA:
		return c.A, true
	case c.LayerB:
		return c.B, true
	}
	return ecs.Entity{}, false
}

// detectCollisions rebuilds the collision list from the positions resolved
// at the end of the previous tick.
func (s *Session) detectCollisions() error {
	s.collisions = s.collisions[:0]
	rows := ecs.Query2(s.world, func(_ ecs.Entity, c *Collider, _ *Transform) bool {
		return c.Active
	})
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[i].A.Layer == rows[j].A.Layer {
				continue
			}
			if rows[i].B.Pos != rows[j].B.Pos {
				continue
			}
			s.collisions = append(s.collisions, Collision{
				A: rows[i].Entity, B: rows[j].Entity,
				LayerA: rows[i].A.Layer, LayerB: rows[j].A.Layer,
			})
		}
	}
	return nil
}

// touching reports whether any collision joins l1 and l2.
func (s *Session) touching(l1, l2 CollisionLayer) bool {
	for _, c := range s.collisions {
		if c.between(l1, l2) {
			return true
		}
	}
	return false
}

// resolve returns the entity on layer l of c, failing when it is gone.
func (s *Session) resolve(c Collision, l CollisionLayer) (ecs.Entity, error) {
	e, ok := c.other(l)
	if !ok || !s.world.Alive(e) {
		return ecs.Entity{}, fmt.Errorf("runner: %s collision: %w", l, ErrCorruptCollision)
	}
	if col, ok := ecs.Get[Collider](s.world, e); !ok || col.Layer != l {
		return ecs.Entity{}, fmt.Errorf("runner: %s collision: %w", l, ErrCorruptCollision)
	}
	return e, nil
}

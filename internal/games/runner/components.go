package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// Transform is an entity's world position.
type Transform struct {
	Pos core.Point
}

// FixedToCamera pins an entity to the viewport: world position is
// camera + Base + Offset. Systems other than the resync only touch Offset.
type FixedToCamera struct {
	Base   core.Point
	Offset core.Point
}

// FollowCamera is like FixedToCamera but its offset drifts for parallax.
type FollowCamera struct {
	Base   core.Point
	Offset core.Point
}

// Renderer describes how an entity is drawn.
type Renderer struct {
	Glyph rune
	FG    core.NullColor
	BG    core.NullColor
	Layer RenderLayer
}

// RenderLayer orders drawing; higher layers are drawn on top.
type RenderLayer int

const (
	LayerStars RenderLayer = iota
	LayerSun
	LayerSkyline
	LayerMarker
	LayerBase
)

// CollisionLayer tags colliders so collisions can be filtered by pair.
type CollisionLayer int

const (
	CollidePlayer CollisionLayer = iota + 1
	CollideGround
	CollideObstacle
	CollidePickup
)

func (l CollisionLayer) String() string {
	switch l {
	case CollidePlayer:
		return "player"
	case CollideGround:
		return "ground"
	case CollideObstacle:
		return "obstacle"
	case CollidePickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Collider makes an entity's cell take part in collision detection.
type Collider struct {
	Layer  CollisionLayer
	Active bool
}

// Camera marks a camera entity. Its Transform is the viewport's top-left corner.
type Camera struct {
	Main bool
}

// Player is the runner's state. Exactly one exists per session.
type Player struct {
	JumpTimer     timer.Timer
	GravityTimer  timer.Timer
	VelocityTimer timer.Timer
	AirJumpsUsed  int
	Velocity      int // cells per second; negative is up
	OnGround      bool
	Distance      int
	Lives         int
}

// Moveable drifts an entity one extra cell left every IntervalMs.
type Moveable struct {
	Timer      timer.Timer
	IntervalMs int64
}

// CleanupOnExit marks entities destroyed once they fall behind the camera.
type CleanupOnExit struct{}

// Kind identifies what an entity represents.
type Kind int

const (
	KindObstacle Kind = iota + 1
	KindPickup
	KindMarkerPiece
	KindStar
	KindSunAnchor
	KindSunPiece
	KindWindow
	KindGround
)

// Tag attaches a Kind to an entity.
type Tag struct {
	Kind Kind
}

// Label is world-space text, such as a distance marker's number.
type Label struct {
	Text string
	FG   core.NullColor
}

package runner

import (
	"strconv"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// Glyphs.
const (
	PlayerGlyph  = '|'
	PickupGlyph  = '+'
	StarGlyph    = '·'
	WindowGlyph  = '▪'
	SupportGlyph = '‖'
	blankGlyph   = ' '
)

var (
	playerColor        = core.RGB(255, 255, 255)
	groundColor        = core.RGB(94, 153, 84)
	obstacleColor      = core.RGB(120, 62, 44)
	pickupColor        = core.RGB(230, 40, 60)
	buildingColor      = core.RGB(70, 72, 96)
	altBuildingColor   = core.RGB(92, 82, 104)
	markerBoardColor   = core.RGB(47, 168, 80)
	markerSupportColor = core.RGB(200, 200, 200)
	markerTextColor    = core.RGB(21, 77, 36)
)

// windowPalette is the lit-window colour per bucket.
var windowPalette = Palette{
	Night:     core.Some(core.RGB(255, 214, 120)),
	Dawn:      core.Some(core.RGB(244, 224, 170)),
	Morning:   core.Some(core.RGB(214, 218, 206)),
	Noon:      core.Some(core.RGB(224, 228, 220)),
	Afternoon: core.Some(core.RGB(214, 218, 206)),
	Dusk:      core.Some(core.RGB(255, 200, 110)),
}

// entityBuilder attaches components to a fresh entity and keeps the first error.
type entityBuilder struct {
	w   *ecs.World
	e   ecs.Entity
	err error
}

func build(w *ecs.World) *entityBuilder {
	return &entityBuilder{w: w, e: w.Create()}
}

func with[T any](b *entityBuilder, v T) *entityBuilder {
	if b.err == nil {
		b.err = ecs.Add(b.w, b.e, v)
	}
	return b
}

func (b *entityBuilder) done() (ecs.Entity, error) {
	return b.e, b.err
}

// groundRow is the row the player stands on.
func (s *Session) groundRow() int {
	return s.height - s.cfg.Player.YOffset
}

// spawnObstacle creates an obstacle at world position pos. A positive move
// interval makes it drift left on its own.
func (s *Session) spawnObstacle(pos core.Point, moveIntervalMs int64) (ecs.Entity, error) {
	b := build(s.world)
	with(b, Transform{Pos: pos})
	with(b, Renderer{Glyph: blankGlyph, BG: core.Some(obstacleColor), Layer: LayerBase})
	with(b, Collider{Layer: CollideObstacle, Active: true})
	with(b, Tag{Kind: KindObstacle})
	with(b, CleanupOnExit{})
	if moveIntervalMs > 0 {
		with(b, Moveable{Timer: timer.StartNew(s.clock), IntervalMs: moveIntervalMs})
	}
	return b.done()
}

// spawnPickup creates an extra-life pickup.
func (s *Session) spawnPickup(pos core.Point) (ecs.Entity, error) {
	b := build(s.world)
	with(b, Transform{Pos: pos})
	with(b, Renderer{Glyph: PickupGlyph, FG: core.Some(pickupColor), Layer: LayerBase})
	with(b, Collider{Layer: CollidePickup, Active: true})
	with(b, Tag{Kind: KindPickup})
	with(b, CleanupOnExit{})
	return b.done()
}

// addDistanceMarker places a sign board at world x = distance, one row above
// the ground, with two supports and the distance written on the board.
func (s *Session) addDistanceMarker(distance int) error {
	const boardWidth = 5
	boardY := s.groundRow() - 1

	piece := func(pos core.Point, r Renderer) error {
		b := build(s.world)
		with(b, Transform{Pos: pos})
		with(b, r)
		with(b, Tag{Kind: KindMarkerPiece})
		with(b, CleanupOnExit{})
		_, err := b.done()
		return err
	}

	for i := 0; i < boardWidth; i++ {
		err := piece(core.Point{X: distance + i, Y: boardY},
			Renderer{Glyph: blankGlyph, BG: core.Some(markerBoardColor), Layer: LayerMarker})
		if err != nil {
			return err
		}
	}
	for _, x := range []int{distance, distance + boardWidth - 1} {
		err := piece(core.Point{X: x, Y: boardY + 1},
			Renderer{Glyph: SupportGlyph, FG: core.Some(markerSupportColor), Layer: LayerMarker})
		if err != nil {
			return err
		}
	}

	b := build(s.world)
	with(b, Transform{Pos: core.Point{X: distance, Y: boardY}})
	with(b, Label{Text: strconv.Itoa(distance), FG: core.Some(markerTextColor)})
	with(b, Tag{Kind: KindMarkerPiece})
	with(b, CleanupOnExit{})
	_, err := b.done()
	return err
}

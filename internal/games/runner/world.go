package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// skyline is the parallax state of the building layer.
type skyline struct {
	Timer timer.Timer
	Span  int // wrap distance for cells leaving the left edge
}

// setupWorld creates the camera, the player, the ground and the backdrop.
func (s *Session) setupWorld() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"camera", s.makeCamera},
		{"player", s.makePlayer},
		{"ground", s.makeGround},
		{"skyline", s.makeSkyline},
		{"stars", s.makeStars},
		{"sun", s.makeSun},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("runner: setup %s: %w", step.name, err)
		}
	}
	s.hud = newHUD()
	return nil
}

func (s *Session) makeCamera() error {
	b := build(s.world)
	with(b, Camera{Main: true})
	with(b, Transform{})
	_, err := b.done()
	return err
}

func (s *Session) makePlayer() error {
	base := core.Point{X: s.cfg.Player.XOffset, Y: s.groundRow()}
	b := build(s.world)
	with(b, Player{
		JumpTimer:     timer.StartNew(s.clock),
		GravityTimer:  timer.StartNew(s.clock),
		VelocityTimer: timer.StartNew(s.clock),
		Lives:         s.cfg.Player.MaxLives,
	})
	with(b, Transform{Pos: base})
	with(b, FixedToCamera{Base: base})
	with(b, Renderer{Glyph: PlayerGlyph, FG: core.Some(playerColor), Layer: LayerBase})
	with(b, Collider{Layer: CollidePlayer, Active: true})
	_, err := b.done()
	return err
}

// makeGround adds the ground collider under the player's cell and the
// decorative ground rows below it.
func (s *Session) makeGround() error {
	base := core.Point{X: s.cfg.Player.XOffset, Y: s.groundRow()}
	b := build(s.world)
	with(b, Transform{Pos: base})
	with(b, FixedToCamera{Base: base})
	with(b, Collider{Layer: CollideGround, Active: true})
	if _, err := b.done(); err != nil {
		return err
	}

	for dy := 1; dy <= s.cfg.Player.YOffset; dy++ {
		for x := 0; x < s.width; x++ {
			pos := core.Point{X: x, Y: s.groundRow() + dy}
			b := build(s.world)
			with(b, Transform{Pos: pos})
			with(b, FixedToCamera{Base: pos})
			with(b, Renderer{Glyph: blankGlyph, BG: core.Some(groundColor), Layer: LayerBase})
			with(b, Tag{Kind: KindGround})
			if _, err := b.done(); err != nil {
				return err
			}
		}
	}
	return nil
}

// makeSkyline lays buildings side by side from a small random start.
// Each building cell is a window that is initially dark.
func (s *Session) makeSkyline() error {
	sc := s.cfg.Skyline
	avail := s.height - s.cfg.Player.YOffset
	minH := max(1, avail-int(float64(avail)*0.8))
	maxH := max(minH, avail-1)

	x := randRange(s.rng, 1, 4)
	for i := 0; i < sc.Buildings; i++ {
		w := randRange(s.rng, sc.MinWidth, sc.MaxWidth)
		h := randRange(s.rng, minH, maxH)
		if err := s.addBuilding(x, w, h); err != nil {
			return err
		}
		x += w
	}
	s.skyline = skyline{Timer: timer.StartNew(s.clock), Span: max(x, s.width)}
	return nil
}

func (s *Session) addBuilding(x, w, h int) error {
	bg := buildingColor
	if s.rng.Intn(2) == 0 {
		bg = altBuildingColor
	}
	top := s.groundRow() - h + 1
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			pos := core.Point{X: x + dx, Y: top + dy}
			b := build(s.world)
			with(b, Transform{Pos: pos})
			with(b, FollowCamera{Base: pos})
			with(b, Renderer{Glyph: blankGlyph, FG: windowPalette.For(s.TimeOfDay()), BG: core.Some(bg), Layer: LayerSkyline})
			with(b, Tag{Kind: KindWindow})
			if _, err := b.done(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) makeStars() error {
	avail := s.height - s.cfg.Player.YOffset
	for i := 0; i < s.cfg.Skyline.Stars; i++ {
		pos := core.Point{X: s.rng.Intn(s.width), Y: s.rng.Intn(avail)}
		b := build(s.world)
		with(b, Transform{Pos: pos})
		with(b, FixedToCamera{Base: pos})
		with(b, Renderer{Glyph: StarGlyph, Layer: LayerStars})
		with(b, Tag{Kind: KindStar})
		if _, err := b.done(); err != nil {
			return err
		}
	}
	return nil
}

// makeSun creates the sun anchor and its two visible pieces.
func (s *Session) makeSun() error {
	b := build(s.world)
	with(b, Transform{})
	with(b, FixedToCamera{})
	with(b, Tag{Kind: KindSunAnchor})
	if _, err := b.done(); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		b := build(s.world)
		with(b, Transform{})
		with(b, FixedToCamera{})
		with(b, Renderer{Glyph: blankGlyph, Layer: LayerSun})
		with(b, Tag{Kind: KindSunPiece})
		if _, err := b.done(); err != nil {
			return err
		}
	}
	return nil
}

package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// advanceWorldTime moves the clock one hour per interval, in any lifecycle
// state, and reports bucket changes.
func (s *Session) advanceWorldTime() error {
	if s.time.AdvanceTimer.ElapsedMillis() < int64(s.cfg.World.AdvanceIntervalMs) {
		return nil
	}
	from := s.TimeOfDay()
	s.time.Hour = core.Wrap(s.time.Hour+1, 24)
	s.time.AdvanceTimer.Restart()
	if to := s.TimeOfDay(); to != from {
		s.events.Emit(EventTimeOfDayChanged, TimeOfDayChange{From: from, To: to, Hour: s.time.Hour})
	}
	return nil
}

// blendWorldColours steps every colour subject towards its bucket target and
// writes the result to the entities that show it.
func (s *Session) blendWorldColours() error {
	tod := s.TimeOfDay()
	t := &s.time

	t.SkyColor = t.Sky.Step(t.SkyColor, skyPalette.For(tod))

	starTarget := starPalette.For(tod)
	starsOut := !starTarget.Valid
	if starsOut {
		starTarget = t.SkyColor
	}
	t.StarColor = t.Stars.Step(t.StarColor, starTarget)
	starGlyph := StarGlyph
	if starsOut {
		starGlyph = blankGlyph
	}

	t.SunColor = t.Sun.Step(t.SunColor, sunPalette.For(tod))
	t.WindowColor = t.Windows.Step(t.WindowColor, windowPalette.For(tod))

	for _, row := range ecs.Query2[Tag, Renderer](s.world, nil) {
		r := row.B
		switch row.A.Kind {
		case KindStar:
			r.FG = t.StarColor
			r.Glyph = starGlyph
		case KindSunPiece:
			r.BG = t.SunColor
		case KindWindow:
			r.FG = t.WindowColor
		}
	}
	return nil
}

// windowCells returns the building cells that are lit (or dark).
func (s *Session) windowCells(lit bool) []*Renderer {
	var out []*Renderer
	for _, row := range ecs.Query2(s.world, func(_ ecs.Entity, t *Tag, r *Renderer) bool {
		return t.Kind == KindWindow && (r.Glyph == WindowGlyph) == lit
	}) {
		out = append(out, row.B)
	}
	return out
}

// switchWindows flips n randomly chosen cells of the set, each at most once.
func (s *Session) switchWindows(cells []*Renderer, n int, glyph rune) int {
	used := make(map[int]bool, n)
	for k := 0; k < n; k++ {
		i, ok := pickIndex(s.rng, len(cells), used)
		if !ok {
			break
		}
		used[i] = true
		cells[i].Glyph = glyph
		cells[i].FG = s.time.WindowColor
	}
	return len(used)
}

// turnOffWindows darkens a share of lit windows every window-off interval
// while it is light. The cadence runs in every bucket.
func (s *Session) turnOffWindows() error {
	wt := &s.time.WindowTimer
	if wt.ElapsedMillis() < int64(s.cfg.World.WindowOffIntervalMs) {
		return nil
	}
	wt.Restart()
	if !s.TimeOfDay().IsLight() {
		return nil
	}
	lit := s.windowCells(true)
	s.switchWindows(lit, windowsToDarken(len(lit)), blankGlyph)
	return nil
}

// updateSun places the sun anchor for the current hour and lays the pieces
// out to its right.
func (s *Session) updateSun() error {
	anchor, err := s.sunAnchor()
	if err != nil {
		return err
	}
	anchor.Offset = SunPosition(s.time.Hour, s.hours, s.width, s.height)
	i := 0
	for _, row := range ecs.Query2(s.world, func(_ ecs.Entity, t *Tag, _ *FixedToCamera) bool {
		return t.Kind == KindSunPiece
	}) {
		row.B.Offset = anchor.Offset.Add(core.Point{X: i})
		i++
	}
	return nil
}

func (s *Session) sunAnchor() (*FixedToCamera, error) {
	rows := ecs.Query2(s.world, func(_ ecs.Entity, t *Tag, _ *FixedToCamera) bool {
		return t.Kind == KindSunAnchor
	})
	if len(rows) != 1 {
		return nil, fmt.Errorf("runner: sun anchor (%d found): %w", len(rows), ecs.ErrMissingSingleton)
	}
	return rows[0].B, nil
}

// scrollSkyline drifts the buildings left one cell per skyline interval,
// wrapping cells that leave the left edge back to the right.
func (s *Session) scrollSkyline() error {
	if !s.playing() {
		return nil
	}
	if s.skyline.Timer.ElapsedMillis() < int64(s.cfg.Skyline.ScrollIntervalMs) {
		return nil
	}
	s.skyline.Timer.Restart()
	for _, row := range ecs.Query1[FollowCamera](s.world, nil) {
		f := row.A
		f.Offset.X = core.Wrap(f.Base.X+f.Offset.X-1, s.skyline.Span) - f.Base.X
	}
	return nil
}

// onTimeOfDayChanged lights windows as evening falls.
func (s *Session) onTimeOfDayChanged(ev ecs.Event) error {
	change, ok := ev.Payload.(TimeOfDayChange)
	if !ok {
		return fmt.Errorf("runner: time of day payload %T", ev.Payload)
	}
	dark := s.windowCells(false)
	lit := s.switchWindows(dark, windowsToLight(change.To, len(dark)), WindowGlyph)
	s.log.Debug("time of day", "from", change.From, "to", change.To, "hour", change.Hour, "lit", lit)
	return nil
}

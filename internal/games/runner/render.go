package runner

import (
	"sort"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
)

var (
	hudColor    = core.Some(core.RGB(240, 240, 240))
	bannerColor = core.Some(core.RGB(255, 230, 120))
)

// Render draws the world relative to the camera, then labels and the HUD.
// The sky colour becomes the screen background.
func (s *Session) Render(dst *core.Screen) {
	cam, err := s.camera()
	if err != nil {
		s.log.Error("render", "err", err)
		return
	}
	if s.time.SkyColor.Valid {
		dst.SetBackground(s.time.SkyColor.Color)
	}
	origin := cam.Pos

	rows := ecs.Query2[Renderer, Transform](s.world, nil)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].A.Layer < rows[j].A.Layer
	})
	for _, row := range rows {
		p := row.B.Pos.Sub(origin)
		r := row.A
		dst.SetCell(p.X, p.Y, core.Cell{Rune: r.Glyph, FG: r.FG, BG: r.BG})
	}

	for _, row := range ecs.Query2[Label, Transform](s.world, nil) {
		p := row.B.Pos.Sub(origin)
		dst.DrawText(p.X, p.Y, row.A.Text, row.A.FG)
	}

	s.renderHUD(dst)
}

func (s *Session) renderHUD(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	dst.DrawText(0, h-1, s.hud.Score, hudColor)
	dst.DrawText(w-len([]rune(s.hud.Lives)), h-1, s.hud.Lives, hudColor)
	dst.DrawText(w-len([]rune(s.hud.Clock)), 0, s.hud.Clock, hudColor)

	y := h / 3
	for _, b := range s.hud.Banners() {
		dst.DrawTextCentered(y, b.Text(), bannerColor)
		y++
	}
}

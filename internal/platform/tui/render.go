package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// cellStyle returns the true-colour style for a cell. Cells without a
// background show the screen background.
func cellStyle(c core.Cell, background core.Color) lipgloss.Style {
	bg := background
	if c.BG.Valid {
		bg = c.BG.Color
	}
	style := lipgloss.NewStyle().Background(hexColor(bg))
	if c.FG.Valid {
		style = style.Foreground(hexColor(c.FG.Color))
	}
	return style
}

func hexColor(c core.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(cellStyle(start, s.Background()).Render(run.String()))
		}
	}
	return sb.String()
}

package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

const maxHistoryRows = 20

// historyView lists the runs finished during this process.
type historyView struct {
	table table.Model
	runs  []storage.RunEntry
}

func newHistoryView(height int) historyView {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 8},
		{Title: "Score", Width: 8},
		{Title: "Lives", Width: 6},
		{Title: "Time", Width: 8},
	}

	rows := height - 4
	if rows < 3 {
		rows = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return historyView{table: t}
}

// load replaces the table contents with the latest runs of gameID.
func (h *historyView) load(store *storage.Store, gameID string) error {
	if store == nil {
		h.setRuns(nil)
		return nil
	}
	runs, err := store.RecentRuns(gameID, maxHistoryRows)
	if err != nil {
		h.setRuns(nil)
		return err
	}
	h.setRuns(runs)
	return nil
}

func (h *historyView) setRuns(runs []storage.RunEntry) {
	h.runs = runs
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		result := "lost"
		if r.Won() {
			result = "won"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			result,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Lives),
			formatDuration(r.Duration),
		}
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
}

func (h historyView) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Run history")
	if len(h.runs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", "No finished runs yet.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, h.table.View())
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

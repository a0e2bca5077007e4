package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// fakeGame records the frames it is stepped with and finishes a run on demand.
type fakeGame struct {
	resets int
	frames []core.InputFrame
	finish *core.RunSummary
	err    error
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	if in.AnyKey() {
		frame.Press()
	}
	g.frames = append(g.frames, frame)

	res := core.StepResult{State: core.GameState{Started: true}, Run: g.finish, Err: g.err}
	g.finish = nil
	g.err = nil
	return res
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake", core.None) }

func (g *fakeGame) State() core.GameState { return core.GameState{} }

func newTestModel(t *testing.T) (Model, *fakeGame, *storage.Store) {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := &fakeGame{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	return NewModel(game, store, cfg), game, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model, cmd
}

func TestModelForwardsKeysForOneTick(t *testing.T) {
	m, game, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, TickMsg(time.Now()))
	_, _ = update(t, m, TickMsg(time.Now()))

	if len(game.frames) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(game.frames))
	}
	if !game.frames[0].Has(core.ActionJump) {
		t.Error("Expected jump in the first frame")
	}
	if game.frames[1].AnyKey() {
		t.Error("Expected the input to be cleared after a tick")
	}
}

func TestModelSavesFinishedRuns(t *testing.T) {
	m, game, store := newTestModel(t)

	game.finish = &core.RunSummary{GameID: "fake", Won: true, Score: 2000, Lives: 2, Duration: time.Minute}
	m, _ = update(t, m, TickMsg(time.Now()))

	if m.best != 2000 {
		t.Errorf("best = %d, expected 2000", m.best)
	}
	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Won() {
		t.Fatalf("Expected one won run, got %+v", runs)
	}

	// A lower score does not lower the best.
	game.finish = &core.RunSummary{GameID: "fake", Score: 50}
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.best != 2000 {
		t.Errorf("best = %d, expected 2000", m.best)
	}
}

func TestModelSurvivesAbortedTicks(t *testing.T) {
	m, game, _ := newTestModel(t)

	game.err = errors.New("boom")
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("Expected the tick loop to continue after an error")
	}
	if m.quitting {
		t.Error("An aborted tick must not quit")
	}
}

func TestModelHistoryOverlay(t *testing.T) {
	m, game, _ := newTestModel(t)
	game.finish = &core.RunSummary{GameID: "fake", Score: 120}
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, runeKey('h'))
	if !m.showHistory {
		t.Fatal("Expected the history overlay to open")
	}
	if len(m.history.runs) != 1 {
		t.Errorf("history has %d runs, expected 1", len(m.history.runs))
	}
	if !strings.Contains(m.View(), "Run history") {
		t.Error("Expected the history title in the view")
	}

	// Keys go to the table, not the game.
	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, TickMsg(time.Now()))
	if game.frames[len(game.frames)-1].AnyKey() {
		t.Error("Expected no input to reach the game while the overlay is open")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.showHistory {
		t.Error("Expected esc to close the overlay")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("Expected quitting after q")
	}
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected an empty view after quitting")
	}
}

func TestModelViewShowsGameAndBest(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.best = 42

	view := ansiEscape.ReplaceAllString(m.View(), "")
	if !strings.Contains(view, "fake") {
		t.Error("Expected the game's render in the view")
	}
	if !strings.Contains(view, "Best: 42") {
		t.Error("Expected the best score in the footer")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{90 * time.Second, "1:30"},
		{3*time.Minute + 400*time.Millisecond, "3:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keys        KeyMap
	mapper      *KeyMapper
	help        help.Model
	history     historyView
	showHistory bool
	best        int
	width       int
	height      int
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	keys := DefaultKeyMap()
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       keys,
		mapper:     NewKeyMapper(keys),
		help:       help.New(),
		history:    newHistoryView(cfg.ScreenH),
	}
	if store != nil {
		if best, err := store.BestScore(game.ID()); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.History), msg.String() == "esc":
			m.showHistory = false
			return m, nil
		}
		var cmd tea.Cmd
		m.history.table, cmd = m.history.table.Update(msg)
		return m, cmd
	}

	switch m.mapper.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHistory:
		if err := m.history.load(m.store, m.game.ID()); err != nil {
			log.Error("cannot load run history", "err", err)
		}
		m.showHistory = true
	}
	return m, nil
}

// handleTick processes simulation ticks. The game keeps running while the
// history overlay is open; key presses are not forwarded to it.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Err != nil {
		log.Error("tick aborted", "game", m.game.ID(), "err", result.Err)
	}
	if result.Run != nil {
		m.recordRun(*result.Run)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) recordRun(run core.RunSummary) {
	if run.Score > m.best {
		m.best = run.Score
	}
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		log.Error("cannot save run", "err", err)
		return
	}
	log.Debug("run saved", "id", id, "outcome", run.Outcome(), "score", run.Score)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.showHistory {
		body = m.history.View()
	} else {
		m.screen.Clear()
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	}

	footer := footerStyle.Render(fmt.Sprintf("Best: %d  ", m.best)) + m.help.View(m.keys)
	view := lipgloss.JoinVertical(lipgloss.Left, body, footer)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

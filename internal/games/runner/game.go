// Package runner implements a side-scrolling runner on a small entity
// component world: the player jumps obstacles while the camera scrolls, the
// sky cycles through day and night, and the run ends on zero lives or on
// reaching the victory score.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// ID is the registry identifier.
const ID = "runner"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset = config.DifficultyNormal
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied after loading.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger new sessions write to.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Session to the platform's game interface.
type Game struct {
	session *Session
	clock   timer.Clock
}

// New creates a new runner instance. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Skyline Runner"
}

// Reset loads the configuration and builds a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyRunnerPreset(&cfg, difficultyPreset)

	opts := Options{
		Config: cfg,
		Width:  runtime.ScreenW,
		Height: runtime.ScreenH,
		Seed:   runtime.Seed,
		Clock:  g.clock,
		Logger: logger,
	}
	s, err := NewSession(opts)
	if err != nil {
		// The viewport can make a loaded config invalid; defaults always fit.
		opts.Config = config.DefaultRunnerConfig()
		s, err = NewSession(opts)
	}
	if err != nil {
		if logger != nil {
			logger.Error("cannot start session", "err", err)
		}
		g.session = nil
		return
	}
	g.session = s
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}
	err := g.session.Tick(in)
	return core.StepResult{
		State: g.State(),
		Run:   g.session.TakeFinished(),
		Err:   err,
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "Viewport too small", core.None)
		return
	}
	g.session.Render(dst)
}

// State returns the platform view of the lifecycle.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Lives:    s.Lives(),
		GameOver: s.game.IsGameOver(),
		Won:      s.State() == Victory,
		Paused:   s.State() == Paused,
		Started:  s.State() != WaitingToStart,
	}
}

// Session exposes the running session, or nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

func init() {
	registry.Register(ID, "Skyline Runner", func() registry.Game {
		return New()
	})
}

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// footerRows is the space the UI keeps below the game for the help line.
const footerRows = 1

var (
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the runner",
	Long: `Start a run.

Controls:
  Space/Up/W - Jump (press again in the air for an air jump)
  P/Esc      - Pause
  H          - Run history of this session
  Q/Ctrl+C   - Quit
  Any key    - Start, or restart after the run is over

Difficulty options:
  easy   - Fewer obstacles, more lives
  normal - Configured values
  hard   - Denser obstacles, fewer pickups, one life

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./my-runner.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Viewport width (0 = from config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Viewport height (0 = from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(preset)

	// Load once here to size the viewport; the game reloads on reset.
	gameCfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}

	cfg := core.RuntimeConfig{
		ScreenW:  gameCfg.Viewport.Width,
		ScreenH:  gameCfg.Viewport.Height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if flagWidth > 0 {
		cfg.ScreenW = flagWidth
	}
	if flagHeight > 0 {
		cfg.ScreenH = flagHeight
	}
	cfg.ScreenW, cfg.ScreenH = fitTerminal(cfg.ScreenW, cfg.ScreenH)

	game, err := registry.Create(runner.ID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	store, err := storage.Open()
	if err != nil {
		// Continue without history - the game still works
		log.Warn("run history disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	log.Info("starting run", "difficulty", preset, "width", cfg.ScreenW, "height", cfg.ScreenH, "fps", cfg.TickRate)
	if err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// fitTerminal shrinks the viewport to the terminal, keeping room for the footer.
func fitTerminal(width, height int) (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return width, height
	}
	return min(width, w), min(height, h-footerRows)
}

package core

// RuntimeConfig is passed to games at creation.
type RuntimeConfig struct {
	ScreenW  int   // viewport width in cells
	ScreenH  int   // viewport height in cells
	TickRate int   // simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns the runner's default runtime settings.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  10,
		TickRate: 60,
	}
}

// GameState is the coarse status the platform reads after each step.
type GameState struct {
	Score    int
	Lives    int
	GameOver bool
	Won      bool // only meaningful when GameOver
	Paused   bool
	Started  bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Run   *RunSummary // set on the tick a run ends
	Err   error       // set when the tick was aborted
}

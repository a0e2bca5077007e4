package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/runner.schema.json
var runnerSchemaJSON []byte

// DefaultRunnerYAML returns the embedded default configuration document.
func DefaultRunnerYAML() []byte {
	out := make([]byte, len(defaultRunnerYAML))
	copy(out, defaultRunnerYAML)
	return out
}

// DefaultRunnerConfig returns the hard-coded defaults. The embedded YAML
// carries the same values.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Viewport: ViewportConfig{
			Width:  80,
			Height: 10,
		},
		Player: PlayerConfig{
			XOffset:     3,
			YOffset:     2,
			MaxLives:    3,
			MaxAirJumps: 1,
		},
		Physics: PhysicsConfig{
			JumpForce: -50,
			Gravity:   15,
		},
		Camera: CameraConfig{
			ScrollIntervalMs: 100,
		},
		Obstacles: ObstacleConfig{
			MinWaitMs:         1500,
			MaxWaitMs:         4000,
			ElevatedChance:    0.5,
			ElevatedHeight:    2,
			MinMoveIntervalMs: 150,
			MaxMoveIntervalMs: 400,
		},
		Pickups: PickupConfig{
			IntervalMs: 5000,
			Chance:     0.1,
			Height:     2,
		},
		Cleanup: CleanupConfig{
			Margin: 10,
		},
		Markers: MarkerConfig{
			Spacing: 500,
		},
		Gameplay: GameplayConfig{
			VictoryScore: 2000,
		},
		World: WorldConfig{
			StartHour:           9,
			AdvanceIntervalMs:   1000,
			TransitionMs:        800,
			WindowOffIntervalMs: 300,
			Sunrise:             5,
			Noon:                12,
			Sunset:              19,
		},
		Skyline: SkylineConfig{
			Buildings:        15,
			MinWidth:         3,
			MaxWidth:         6,
			Stars:            26,
			ScrollIntervalMs: 400,
		},
	}
}

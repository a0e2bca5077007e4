// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the runner.
package config

// RunnerConfig contains all tunables of the runner simulation.
type RunnerConfig struct {
	Viewport  ViewportConfig `yaml:"viewport"`
	Player    PlayerConfig   `yaml:"player"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Camera    CameraConfig   `yaml:"camera"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Pickups   PickupConfig   `yaml:"pickups"`
	Cleanup   CleanupConfig  `yaml:"cleanup"`
	Markers   MarkerConfig   `yaml:"markers"`
	Gameplay  GameplayConfig `yaml:"gameplay"`
	World     WorldConfig    `yaml:"world"`
	Skyline   SkylineConfig  `yaml:"skyline"`
}

// ViewportConfig is the size of the visible world in cells.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig places the player and bounds its lives and air jumps.
type PlayerConfig struct {
	XOffset     int `yaml:"x_offset"` // columns from the camera's left edge
	YOffset     int `yaml:"y_offset"` // rows of ground below the player
	MaxLives    int `yaml:"max_lives"`
	MaxAirJumps int `yaml:"max_air_jumps"`
}

// PhysicsConfig holds vertical velocity constants in cells per second.
// Negative velocity moves up.
type PhysicsConfig struct {
	JumpForce int `yaml:"jump_force"`
	Gravity   int `yaml:"gravity"`
}

// CameraConfig controls world scroll speed.
type CameraConfig struct {
	ScrollIntervalMs int `yaml:"scroll_interval_ms"`
}

// ObstacleConfig controls obstacle spawn cadence and the elevated variant.
type ObstacleConfig struct {
	MinWaitMs         int     `yaml:"min_wait_ms"`
	MaxWaitMs         int     `yaml:"max_wait_ms"`
	ElevatedChance    float64 `yaml:"elevated_chance"`
	ElevatedHeight    int     `yaml:"elevated_height"` // rows above the ground
	MinMoveIntervalMs int     `yaml:"min_move_interval_ms"`
	MaxMoveIntervalMs int     `yaml:"max_move_interval_ms"`
}

// PickupConfig controls extra-life spawns.
type PickupConfig struct {
	IntervalMs int     `yaml:"interval_ms"`
	Chance     float64 `yaml:"chance"`
	Height     int     `yaml:"height"` // rows above the ground
}

// CleanupConfig sets how far behind the camera entities survive.
type CleanupConfig struct {
	Margin int `yaml:"margin"`
}

// MarkerConfig sets the distance between distance markers.
type MarkerConfig struct {
	Spacing int `yaml:"spacing"`
}

// GameplayConfig holds win conditions.
type GameplayConfig struct {
	VictoryScore int `yaml:"victory_score"`
}

// Fixed day-night bucket boundaries. Sunrise, noon and sunset are
// configurable but must fall around them.
const (
	MorningStartHour = 9
	DuskStartHour    = 17
)

// WorldConfig drives the day-night cycle.
type WorldConfig struct {
	StartHour           int `yaml:"start_hour"`
	AdvanceIntervalMs   int `yaml:"advance_interval_ms"`
	TransitionMs        int `yaml:"transition_ms"`
	WindowOffIntervalMs int `yaml:"window_off_interval_ms"`
	Sunrise             int `yaml:"sunrise"`
	Noon                int `yaml:"noon"`
	Sunset              int `yaml:"sunset"`
}

// SkylineConfig describes the decorative background.
type SkylineConfig struct {
	Buildings        int `yaml:"buildings"`
	MinWidth         int `yaml:"min_width"`
	MaxWidth         int `yaml:"max_width"`
	Stars            int `yaml:"stars"`
	ScrollIntervalMs int `yaml:"scroll_interval_ms"`
}

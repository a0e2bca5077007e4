package runner

import "github.com/vovakirdan/tui-runner/internal/ecs"

// Events emitted by the simulation and drained once per tick.
const (
	EventTimeOfDayChanged ecs.EventType = iota + 1
	EventPauseChanged
	EventVictory
	EventDefeat
	EventRestart
)

// TimeOfDayChange is the payload of EventTimeOfDayChanged.
type TimeOfDayChange struct {
	From, To TimeOfDay
	Hour     int
}

// PauseChange is the payload of EventPauseChanged.
type PauseChange struct {
	Paused bool
}

// GameOver is the payload of EventVictory and EventDefeat.
type GameOver struct {
	Score    int
	Distance int
	Lives    int
}

package core

import "time"

// RunSummary describes a finished run. Games hand it to the platform in the
// StepResult of the tick the run ended.
type RunSummary struct {
	GameID   string
	Won      bool
	Score    int
	Distance int
	Lives    int
	Duration time.Duration
}

// Outcome returns "victory" or "defeat".
func (r RunSummary) Outcome() string {
	if r.Won {
		return "victory"
	}
	return "defeat"
}

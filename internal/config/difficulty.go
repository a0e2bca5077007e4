package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyRunnerPreset adjusts spawn ranges, lives and the victory score.
// Presets act once at load time; ranges stay fixed for the whole run.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.MinWaitMs = scale(cfg.Obstacles.MinWaitMs, 4, 3)
		cfg.Obstacles.MaxWaitMs = scale(cfg.Obstacles.MaxWaitMs, 4, 3)
		cfg.Obstacles.ElevatedChance /= 2
		cfg.Pickups.Chance = min(1, cfg.Pickups.Chance*2)
		cfg.Player.MaxLives += 2
		cfg.Gameplay.VictoryScore = scale(cfg.Gameplay.VictoryScore, 3, 4)
	case DifficultyHard:
		cfg.Obstacles.MinWaitMs = scale(cfg.Obstacles.MinWaitMs, 2, 3)
		cfg.Obstacles.MaxWaitMs = scale(cfg.Obstacles.MaxWaitMs, 2, 3)
		cfg.Obstacles.MinMoveIntervalMs = scale(cfg.Obstacles.MinMoveIntervalMs, 2, 3)
		cfg.Obstacles.MaxMoveIntervalMs = scale(cfg.Obstacles.MaxMoveIntervalMs, 2, 3)
		cfg.Pickups.Chance /= 2
		cfg.Player.MaxLives = max(1, cfg.Player.MaxLives-1)
		cfg.Gameplay.VictoryScore = scale(cfg.Gameplay.VictoryScore, 3, 2)
	}
}

// scale returns v*num/den, never below 1.
func scale(v, num, den int) int {
	return max(1, v*num/den)
}

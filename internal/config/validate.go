package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const runnerSchemaURL = "https://tui-runner.local/schemas/runner.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func runnerSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(runnerSchemaURL, bytes.NewReader(runnerSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config: add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(runnerSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("config: compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// validateSchema checks a generically decoded YAML document against the
// runner schema. The document is round-tripped through JSON so the
// validator sees plain JSON values.
func validateSchema(doc any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: document is not JSON compatible: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("config: document is not JSON compatible: %w", err)
	}

	s, err := runnerSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints the schema cannot express.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Viewport.Width > c.Player.XOffset, "viewport.width %d must exceed player.x_offset %d", c.Viewport.Width, c.Player.XOffset)
	check(c.Viewport.Height > c.Player.YOffset+1, "viewport.height %d leaves no room above the ground", c.Viewport.Height)
	check(c.Player.MaxLives >= 1, "player.max_lives must be at least 1")
	check(c.Physics.JumpForce < 0, "physics.jump_force must be negative")
	check(c.Physics.Gravity > 0, "physics.gravity must be positive")
	check(c.Camera.ScrollIntervalMs > 0, "camera.scroll_interval_ms must be positive")
	check(c.Obstacles.MinWaitMs > 0 && c.Obstacles.MinWaitMs <= c.Obstacles.MaxWaitMs,
		"obstacles wait range %d..%d is invalid", c.Obstacles.MinWaitMs, c.Obstacles.MaxWaitMs)
	check(c.Obstacles.MinMoveIntervalMs > 0 && c.Obstacles.MinMoveIntervalMs <= c.Obstacles.MaxMoveIntervalMs,
		"obstacles move interval range %d..%d is invalid", c.Obstacles.MinMoveIntervalMs, c.Obstacles.MaxMoveIntervalMs)
	check(c.Obstacles.ElevatedChance >= 0 && c.Obstacles.ElevatedChance <= 1, "obstacles.elevated_chance must be within [0, 1]")
	check(c.Pickups.Chance >= 0 && c.Pickups.Chance <= 1, "pickups.chance must be within [0, 1]")
	check(c.Pickups.IntervalMs > 0, "pickups.interval_ms must be positive")
	check(c.Cleanup.Margin >= 0, "cleanup.margin must not be negative")
	check(c.Markers.Spacing > 0, "markers.spacing must be positive")
	check(c.Gameplay.VictoryScore > 0, "gameplay.victory_score must be positive")

	w := c.World
	check(w.Sunrise >= 0 && w.Sunrise < w.Noon && w.Noon < w.Sunset && w.Sunset <= 23,
		"world hours must satisfy 0 <= sunrise < noon < sunset <= 23 (got %d, %d, %d)", w.Sunrise, w.Noon, w.Sunset)
	check(w.Sunrise < MorningStartHour && w.Noon >= MorningStartHour && w.Noon < DuskStartHour && w.Sunset > DuskStartHour,
		"world hours must satisfy sunrise < %d <= noon < %d < sunset", MorningStartHour, DuskStartHour)
	check(w.StartHour >= 0 && w.StartHour <= 23, "world.start_hour must be within [0, 23]")
	check(w.AdvanceIntervalMs > 0 && w.TransitionMs > 0 && w.WindowOffIntervalMs > 0, "world intervals must be positive")

	s := c.Skyline
	check(s.MinWidth > 0 && s.MinWidth <= s.MaxWidth, "skyline width range %d..%d is invalid", s.MinWidth, s.MaxWidth)
	check(s.ScrollIntervalMs > 0, "skyline.scroll_interval_ms must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

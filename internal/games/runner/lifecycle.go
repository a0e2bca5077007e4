package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// handleLifecycleInput applies the key-driven transitions:
// start on any key, pause toggle, and restart on any key after game over.
func (s *Session) handleLifecycleInput() error {
	switch s.game.State {
	case WaitingToStart:
		if s.input.AnyKey() {
			s.game.State = Playing
			s.runTimer.Restart()
			s.log.Debug("run started")
		}
	case Playing:
		if s.input.Has(core.ActionPause) {
			s.game.State = Paused
			s.events.Emit(EventPauseChanged, PauseChange{Paused: true})
		}
	case Paused:
		if s.input.Has(core.ActionPause) {
			s.game.State = Playing
			s.events.Emit(EventPauseChanged, PauseChange{Paused: false})
		}
	case Victory, Defeat:
		if s.input.AnyKey() {
			s.game.State = Playing
			s.restartPending = true
			s.events.Emit(EventRestart, nil)
		}
	}
	return nil
}

// scrollCamera moves the main camera one cell right per scroll interval.
func (s *Session) scrollCamera() error {
	cam, err := s.camera()
	if err != nil {
		return err
	}
	if !s.playing() {
		return nil
	}
	if s.game.ScrollTimer.ElapsedMillis() >= int64(s.cfg.Camera.ScrollIntervalMs) {
		cam.Pos.X++
		s.game.ScrollTimer.Restart()
	}
	return nil
}

// evaluateOutcome ends the run on zero lives or on reaching the victory score.
func (s *Session) evaluateOutcome() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() {
		return nil
	}
	over := GameOver{Score: s.game.Score, Distance: p.Distance, Lives: p.Lives}
	switch {
	case p.Lives == 0:
		s.game.State = Defeat
		s.events.Emit(EventDefeat, over)
	case s.game.Score >= s.cfg.Gameplay.VictoryScore:
		s.game.State = Victory
		s.events.Emit(EventVictory, over)
	}
	return nil
}

// onRestart resets every piece of per-run state. It runs in the event drain
// of the tick the restart key was pressed, before the next tick's systems.
func (s *Session) onRestart(ecs.Event) error {
	e, p, err := s.player()
	if err != nil {
		return err
	}
	anchor, ok := ecs.Get[FixedToCamera](s.world, e)
	if !ok {
		return errMissing("player anchor")
	}
	cam, err := s.camera()
	if err != nil {
		return err
	}

	p.Lives = s.cfg.Player.MaxLives
	p.Velocity = 0
	p.AirJumpsUsed = 0
	p.Distance = s.cfg.Player.XOffset
	p.JumpTimer.Restart()
	p.GravityTimer.Restart()
	p.VelocityTimer.Restart()
	anchor.Offset = core.Point{}

	cam.Pos.X = 0
	s.game.Score = 0
	s.game.State = Playing
	s.game.ScrollTimer.Restart()

	destroyed := 0
	for _, row := range ecs.Query1(s.world, func(_ ecs.Entity, t *Tag) bool {
		return t.Kind == KindObstacle || t.Kind == KindMarkerPiece || t.Kind == KindPickup
	}) {
		s.world.Destroy(row.Entity)
		destroyed++
	}
	for _, row := range ecs.Query1[FollowCamera](s.world, nil) {
		row.A.Offset = core.Point{}
	}

	s.collisions = s.collisions[:0]
	s.spawn.ObstacleTimer.Restart()
	s.spawn.PickupTimer.Restart()
	s.spawn.NextObstacleWaitMs = s.drawObstacleWait()
	s.skyline.Timer.Restart()
	s.runTimer.Restart()
	s.restartPending = false

	s.log.Debug("run restarted", "destroyed", destroyed)
	return nil
}

// onGameOver records the finished run for the platform.
func (s *Session) onGameOver(ev ecs.Event) error {
	over, ok := ev.Payload.(GameOver)
	if !ok {
		return fmt.Errorf("runner: game over payload %T", ev.Payload)
	}
	won := ev.Type == EventVictory
	s.runTimer.Stop()
	s.finished = &core.RunSummary{
		GameID:   ID,
		Won:      won,
		Score:    over.Score,
		Distance: over.Distance,
		Lives:    over.Lives,
		Duration: s.runTimer.Elapsed(),
	}
	if won {
		s.hud.show(BannerVictory)
	} else {
		s.hud.show(BannerDefeat)
	}
	s.log.Info("run finished", "outcome", s.finished.Outcome(), "score", over.Score, "distance", over.Distance)
	return nil
}

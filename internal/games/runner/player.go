package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// detectGround marks the player grounded while its cell touches the ground collider.
func (s *Session) detectGround() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	p.OnGround = s.touching(CollidePlayer, CollideGround)
	return nil
}

// applyGravity accelerates an airborne player downward one GRAVITY step per
// 1000/|GRAVITY| ms. A grounded player is held at rest.
func (s *Session) applyGravity() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() {
		return nil
	}
	if p.OnGround {
		p.Velocity = 0
		p.AirJumpsUsed = 0
		p.GravityTimer.Restart()
		return nil
	}
	g := s.cfg.Physics.Gravity
	if g == 0 {
		return nil
	}
	if p.GravityTimer.ElapsedMillis() >= int64(1000/core.Abs(g)) {
		p.Velocity += g
		p.GravityTimer.Restart()
	}
	return nil
}

// handleJump applies JUMP_FORCE on a jump press when grounded or when an
// air jump is left.
func (s *Session) handleJump() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() || !s.input.Has(core.ActionJump) {
		return nil
	}
	switch {
	case p.OnGround:
	case p.AirJumpsUsed < s.cfg.Player.MaxAirJumps:
		p.AirJumpsUsed++
	default:
		return nil
	}
	p.Velocity = s.cfg.Physics.JumpForce
	p.JumpTimer.Restart()
	return nil
}

// applyVelocity moves the player one row per 1000/|velocity| ms. The
// velocity timer idles while at rest, so the first step of a jump is taken
// on the tick the jump starts.
func (s *Session) applyVelocity() error {
	e, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() || p.Velocity == 0 {
		return nil
	}
	if p.VelocityTimer.ElapsedMillis() < int64(1000/core.Abs(p.Velocity)) {
		return nil
	}
	anchor, ok := ecs.Get[FixedToCamera](s.world, e)
	if !ok {
		return errMissing("player anchor")
	}
	if p.Velocity < 0 {
		anchor.Offset.Y--
	} else if anchor.Offset.Y < 0 {
		// Never sink below the ground row.
		anchor.Offset.Y++
	}
	p.VelocityTimer.Restart()
	return nil
}

// handlePlayerCollisions costs a life per obstacle hit and grants one per
// pickup. Both objects are consumed.
func (s *Session) handlePlayerCollisions() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() {
		return nil
	}
	for _, c := range s.collisions {
		switch {
		case c.between(CollidePlayer, CollideObstacle):
			e, err := s.resolve(c, CollideObstacle)
			if err != nil {
				return err
			}
			if s.world.Doomed(e) {
				continue
			}
			if p.Lives > 0 {
				p.Lives--
			}
			s.world.Destroy(e)
			s.log.Debug("obstacle hit", "lives", p.Lives)
		case c.between(CollidePlayer, CollidePickup):
			e, err := s.resolve(c, CollidePickup)
			if err != nil {
				return err
			}
			if s.world.Doomed(e) {
				continue
			}
			if p.Lives < s.cfg.Player.MaxLives {
				p.Lives++
			}
			s.world.Destroy(e)
			s.log.Debug("extra life", "lives", p.Lives)
		}
	}
	return nil
}

// updateDistanceAndScore derives distance from the camera and, while
// playing, the score from distance.
func (s *Session) updateDistanceAndScore() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	cam, err := s.camera()
	if err != nil {
		return err
	}
	p.Distance = cam.Pos.X + s.cfg.Player.XOffset
	if s.playing() {
		s.game.Score = p.Distance - s.cfg.Player.XOffset
	}
	return nil
}

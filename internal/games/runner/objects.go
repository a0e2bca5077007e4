package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
)

// spawnObstacles places an obstacle just past the right edge once the
// jittered wait has elapsed. The timer restarts and the wait is redrawn on
// every decision, spawn or not.
func (s *Session) spawnObstacles() error {
	cam, err := s.camera()
	if err != nil {
		return err
	}
	if s.spawn.ObstacleTimer.ElapsedMillis() < s.spawn.NextObstacleWaitMs {
		return nil
	}
	defer func() {
		s.spawn.ObstacleTimer.Restart()
		s.spawn.NextObstacleWaitMs = s.drawObstacleWait()
	}()
	if !s.playing() {
		return nil
	}

	oc := s.cfg.Obstacles
	pos := core.Point{X: cam.Pos.X + s.width + 1, Y: s.groundRow()}
	var interval int64
	if s.rng.Float64() < oc.ElevatedChance {
		pos.Y -= oc.ElevatedHeight
		interval = int64(randRange(s.rng, oc.MinMoveIntervalMs, oc.MaxMoveIntervalMs))
	}
	_, err = s.spawnObstacle(pos, interval)
	return err
}

// spawnPickups rolls for an extra-life pickup once per interval.
func (s *Session) spawnPickups() error {
	cam, err := s.camera()
	if err != nil {
		return err
	}
	pc := s.cfg.Pickups
	if s.spawn.PickupTimer.ElapsedMillis() < int64(pc.IntervalMs) {
		return nil
	}
	s.spawn.PickupTimer.Restart()
	if !s.playing() || s.rng.Float64() >= pc.Chance {
		return nil
	}
	_, err = s.spawnPickup(core.Point{X: cam.Pos.X + s.width + 1, Y: s.groundRow() - pc.Height})
	return err
}

// moveObstacles shifts each moveable one extra cell left per its own interval.
func (s *Session) moveObstacles() error {
	if !s.playing() {
		return nil
	}
	for _, row := range ecs.Query3(s.world, func(_ ecs.Entity, _ *Moveable, _ *Transform, t *Tag) bool {
		return t.Kind == KindObstacle
	}) {
		m := row.A
		if m.IntervalMs <= 0 || m.Timer.ElapsedMillis() < m.IntervalMs {
			continue
		}
		row.B.Pos.X--
		m.Timer.Restart()
	}
	return nil
}

// nextMarkerDistance is the smallest multiple of spacing strictly greater than d.
func nextMarkerDistance(d, spacing int) int {
	if spacing <= 0 {
		return d + 1
	}
	if d < 0 {
		return 0
	}
	return spacing * (d/spacing + 1)
}

// generateMarkers places the next distance marker when none is left.
func (s *Session) generateMarkers() error {
	_, p, err := s.player()
	if err != nil {
		return err
	}
	if !s.playing() {
		return nil
	}
	pieces := ecs.Query1(s.world, func(_ ecs.Entity, t *Tag) bool { return t.Kind == KindMarkerPiece })
	if len(pieces) > 0 {
		return nil
	}
	return s.addDistanceMarker(nextMarkerDistance(p.Distance, s.cfg.Markers.Spacing))
}

// cleanupBehindCamera destroys cleanup-eligible entities more than the
// margin behind the camera.
func (s *Session) cleanupBehindCamera() error {
	cam, err := s.camera()
	if err != nil {
		return err
	}
	limit := cam.Pos.X - s.cfg.Cleanup.Margin
	for _, row := range ecs.Query2[CleanupOnExit, Transform](s.world, nil) {
		if row.B.Pos.X < limit {
			s.world.Destroy(row.Entity)
		}
	}
	return nil
}

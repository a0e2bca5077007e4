package runner

import "github.com/vovakirdan/tui-runner/internal/ecs"

// resyncAnchors recomputes the world position of every camera-relative
// entity as camera + base + offset. It runs last in the tick, after the
// event drain, so restart resets are already visible.
func (s *Session) resyncAnchors() error {
	cam, err := s.camera()
	if err != nil {
		return err
	}
	for _, row := range ecs.Query2[FixedToCamera, Transform](s.world, nil) {
		row.B.Pos = cam.Pos.Add(row.A.Base).Add(row.A.Offset)
	}
	for _, row := range ecs.Query2[FollowCamera, Transform](s.world, nil) {
		row.B.Pos = cam.Pos.Add(row.A.Base).Add(row.A.Offset)
	}
	return nil
}

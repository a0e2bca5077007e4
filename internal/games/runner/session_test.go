package runner

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

const never = 1 << 40

// quiet disables random spawns and the hour clock so tests control the world.
func quiet(cfg *config.RunnerConfig) {
	cfg.Obstacles.MinWaitMs = never
	cfg.Obstacles.MaxWaitMs = never
	cfg.Pickups.IntervalMs = never
	cfg.World.AdvanceIntervalMs = never
}

func newTestSession(t *testing.T, mutate func(*config.RunnerConfig)) (*Session, *timer.ManualClock) {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	quiet(&cfg)
	if mutate != nil {
		mutate(&cfg)
	}
	clock := timer.NewManualClock()
	s, err := NewSession(Options{Config: cfg, Seed: 1, Clock: clock})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, clock
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func anyKey() core.InputFrame {
	in := core.NewInputFrame()
	in.Press()
	return in
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func mustTick(t *testing.T, s *Session, in core.InputFrame) {
	t.Helper()
	if err := s.Tick(in); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

// startedSession returns a session that has just entered Playing.
func startedSession(t *testing.T, mutate func(*config.RunnerConfig)) (*Session, *timer.ManualClock) {
	t.Helper()
	s, clock := newTestSession(t, mutate)
	mustTick(t, s, anyKey())
	if s.State() != Playing {
		t.Fatalf("State = %v, expected %v", s.State(), Playing)
	}
	return s, clock
}

func testPlayer(t *testing.T, s *Session) (*Player, *FixedToCamera) {
	t.Helper()
	e, p, err := s.player()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	anchor, ok := ecs.Get[FixedToCamera](s.world, e)
	if !ok {
		t.Fatal("player has no anchor")
	}
	return p, anchor
}

func testCamera(t *testing.T, s *Session) *Transform {
	t.Helper()
	cam, err := s.camera()
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	return cam
}

func countKind(s *Session, k Kind) int {
	return len(ecs.Query1(s.world, func(_ ecs.Entity, t *Tag) bool { return t.Kind == k }))
}

func TestNewSessionPlayerGrounded(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustTick(t, s, idle())

	p, _ := testPlayer(t, s)
	if !p.OnGround {
		t.Error("player should start on the ground")
	}
	if p.Lives != s.cfg.Player.MaxLives {
		t.Errorf("Lives = %d, expected %d", p.Lives, s.cfg.Player.MaxLives)
	}
	if s.State() != WaitingToStart {
		t.Errorf("State = %v, expected %v", s.State(), WaitingToStart)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Physics.Gravity = 0
	if _, err := NewSession(Options{Config: cfg, Clock: timer.NewManualClock()}); err == nil {
		t.Error("expected an error for zero gravity")
	}
}

func TestStartOnAnyKey(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustTick(t, s, idle())
	if s.State() != WaitingToStart {
		t.Fatalf("State = %v, expected %v", s.State(), WaitingToStart)
	}
	if !s.HUD().Showing(BannerStart) {
		t.Error("start banner should be shown while waiting")
	}

	mustTick(t, s, anyKey())
	if s.State() != Playing {
		t.Errorf("State = %v, expected %v", s.State(), Playing)
	}
	if s.HUD().Showing(BannerStart) {
		t.Error("start banner should be removed once playing")
	}
}

func TestGroundJump(t *testing.T) {
	s, clock := startedSession(t, nil)

	clock.AdvanceMillis(20)
	mustTick(t, s, press(core.ActionJump))

	p, anchor := testPlayer(t, s)
	if p.Velocity != s.cfg.Physics.JumpForce {
		t.Errorf("Velocity = %d, expected %d", p.Velocity, s.cfg.Physics.JumpForce)
	}
	if p.AirJumpsUsed != 0 {
		t.Errorf("AirJumpsUsed = %d, expected 0 after a ground jump", p.AirJumpsUsed)
	}
	if anchor.Offset.Y != -1 {
		t.Errorf("Offset.Y = %d, expected -1 after the first jump step", anchor.Offset.Y)
	}
}

func TestAirJumpBudget(t *testing.T) {
	s, clock := startedSession(t, nil)
	clock.AdvanceMillis(20)
	mustTick(t, s, press(core.ActionJump))

	mustTick(t, s, idle())
	p, _ := testPlayer(t, s)
	if p.OnGround {
		t.Fatal("player should be airborne after the jump step")
	}

	p.Velocity = 5
	mustTick(t, s, press(core.ActionJump))
	if p.Velocity != s.cfg.Physics.JumpForce {
		t.Errorf("Velocity = %d, expected %d after an air jump", p.Velocity, s.cfg.Physics.JumpForce)
	}
	if p.AirJumpsUsed != 1 {
		t.Errorf("AirJumpsUsed = %d, expected 1", p.AirJumpsUsed)
	}

	p.Velocity = 7
	mustTick(t, s, press(core.ActionJump))
	if p.Velocity != 7 {
		t.Errorf("Velocity = %d, expected 7 once the air jump budget is spent", p.Velocity)
	}
	if p.AirJumpsUsed != 1 {
		t.Errorf("AirJumpsUsed = %d, expected 1", p.AirJumpsUsed)
	}
}

func TestGravityAccumulates(t *testing.T) {
	s, clock := startedSession(t, nil)
	clock.AdvanceMillis(20)
	mustTick(t, s, press(core.ActionJump))
	mustTick(t, s, idle())

	clock.AdvanceMillis(int64(1000/s.cfg.Physics.Gravity) + 1)
	mustTick(t, s, idle())

	p, _ := testPlayer(t, s)
	expected := s.cfg.Physics.JumpForce + s.cfg.Physics.Gravity
	if p.Velocity != expected {
		t.Errorf("Velocity = %d, expected %d", p.Velocity, expected)
	}
}

func TestLandingStopsAtGround(t *testing.T) {
	s, clock := startedSession(t, nil)
	p, anchor := testPlayer(t, s)

	anchor.Offset.Y = -1
	if err := s.resyncAnchors(); err != nil {
		t.Fatalf("resyncAnchors: %v", err)
	}
	p.Velocity = 50

	clock.AdvanceMillis(25)
	mustTick(t, s, idle())
	if anchor.Offset.Y != 0 {
		t.Fatalf("Offset.Y = %d, expected 0 after falling one row", anchor.Offset.Y)
	}

	clock.AdvanceMillis(25)
	mustTick(t, s, idle())
	if anchor.Offset.Y != 0 {
		t.Errorf("Offset.Y = %d, expected the player to stay on the ground row", anchor.Offset.Y)
	}
	if !p.OnGround || p.Velocity != 0 {
		t.Errorf("OnGround = %v, Velocity = %d, expected grounded at rest", p.OnGround, p.Velocity)
	}
}

// playerCell is the player's world position.
func playerCell(s *Session) core.Point {
	return core.Point{X: s.cfg.Player.XOffset, Y: s.groundRow()}
}

func TestObstacleCollisionCostsLife(t *testing.T) {
	tests := []struct {
		lives    int
		expected int
	}{
		{3, 2},
		{1, 0},
		{0, 0},
	}
	for _, tt := range tests {
		s, _ := startedSession(t, nil)
		p, _ := testPlayer(t, s)
		p.Lives = tt.lives

		e, err := s.spawnObstacle(playerCell(s), 0)
		if err != nil {
			t.Fatalf("spawnObstacle: %v", err)
		}
		mustTick(t, s, idle())

		if p.Lives != tt.expected {
			t.Errorf("lives %d: Lives = %d, expected %d", tt.lives, p.Lives, tt.expected)
		}
		if s.world.Alive(e) {
			t.Errorf("lives %d: obstacle should be destroyed", tt.lives)
		}
	}
}

func TestPickupGrantsLife(t *testing.T) {
	tests := []struct {
		lives    int
		expected int
	}{
		{1, 2},
		{2, 3},
		{3, 3},
	}
	for _, tt := range tests {
		s, _ := startedSession(t, nil)
		p, _ := testPlayer(t, s)
		p.Lives = tt.lives

		e, err := s.spawnPickup(playerCell(s))
		if err != nil {
			t.Fatalf("spawnPickup: %v", err)
		}
		mustTick(t, s, idle())

		if p.Lives != tt.expected {
			t.Errorf("lives %d: Lives = %d, expected %d", tt.lives, p.Lives, tt.expected)
		}
		if s.world.Alive(e) {
			t.Errorf("lives %d: pickup should be destroyed", tt.lives)
		}
	}
}

func TestDefeatAndRestart(t *testing.T) {
	s, clock := startedSession(t, nil)
	p, anchor := testPlayer(t, s)
	cam := testCamera(t, s)

	p.Lives = 0
	mustTick(t, s, idle())
	if s.State() != Defeat {
		t.Fatalf("State = %v, expected %v", s.State(), Defeat)
	}
	run := s.TakeFinished()
	if run == nil || run.Won {
		t.Fatalf("finished run = %+v, expected a defeat", run)
	}
	if !s.HUD().Showing(BannerDefeat) {
		t.Error("defeat banner should be shown")
	}

	// No physics or scrolling once the run is over.
	p.Velocity = -50
	anchor.Offset.Y = -2
	camX := cam.Pos.X
	clock.AdvanceMillis(500)
	mustTick(t, s, idle())
	if p.Velocity != -50 || anchor.Offset.Y != -2 {
		t.Errorf("Velocity = %d, Offset.Y = %d, expected no change after defeat", p.Velocity, anchor.Offset.Y)
	}
	if cam.Pos.X != camX {
		t.Errorf("camera x = %d, expected %d after defeat", cam.Pos.X, camX)
	}

	obstacle, _ := s.spawnObstacle(core.Point{X: 100, Y: 0}, 0)
	if err := s.addDistanceMarker(500); err != nil {
		t.Fatalf("addDistanceMarker: %v", err)
	}
	for _, row := range ecs.Query1[FollowCamera](s.world, nil) {
		row.A.Offset.X = -4
	}
	cam.Pos.X = 77

	mustTick(t, s, anyKey())
	if s.State() != Playing {
		t.Fatalf("State = %v, expected %v", s.State(), Playing)
	}
	if s.restartPending {
		t.Error("restart should be fully applied within the tick")
	}
	if p.Lives != s.cfg.Player.MaxLives {
		t.Errorf("Lives = %d, expected %d", p.Lives, s.cfg.Player.MaxLives)
	}
	if p.Velocity != 0 || anchor.Offset != (core.Point{}) {
		t.Errorf("Velocity = %d, Offset = %v, expected the player at rest on its base", p.Velocity, anchor.Offset)
	}
	if cam.Pos.X != 0 || s.Score() != 0 {
		t.Errorf("camera x = %d, score = %d, expected both reset to 0", cam.Pos.X, s.Score())
	}
	if s.world.Alive(obstacle) {
		t.Error("obstacle should be destroyed on restart")
	}
	if n := countKind(s, KindMarkerPiece); n != 0 {
		t.Errorf("%d marker pieces left after restart, expected 0", n)
	}
	for _, row := range ecs.Query1[FollowCamera](s.world, nil) {
		if row.A.Offset != (core.Point{}) {
			t.Fatalf("FollowCamera offset = %v, expected zero", row.A.Offset)
		}
	}
	if s.HUD().Showing(BannerDefeat) {
		t.Error("defeat banner should be removed after restart")
	}
}

func TestVictory(t *testing.T) {
	s, _ := startedSession(t, nil)
	cam := testCamera(t, s)

	cam.Pos.X = s.cfg.Gameplay.VictoryScore - 1
	mustTick(t, s, idle())
	if s.State() != Playing {
		t.Fatalf("State = %v, expected %v below the victory score", s.State(), Playing)
	}

	cam.Pos.X = s.cfg.Gameplay.VictoryScore
	mustTick(t, s, idle())
	if s.State() != Victory {
		t.Fatalf("State = %v, expected %v", s.State(), Victory)
	}
	run := s.TakeFinished()
	if run == nil || !run.Won || run.Score != s.cfg.Gameplay.VictoryScore {
		t.Errorf("finished run = %+v, expected a win with score %d", run, s.cfg.Gameplay.VictoryScore)
	}
	if s.TakeFinished() != nil {
		t.Error("TakeFinished should hand out a run once")
	}
}

func TestPauseToggle(t *testing.T) {
	var changes []bool
	s, clock := startedSession(t, nil)
	s.events.Subscribe(EventPauseChanged, func(ev ecs.Event) error {
		changes = append(changes, ev.Payload.(PauseChange).Paused)
		return nil
	})
	cam := testCamera(t, s)

	mustTick(t, s, press(core.ActionPause))
	if s.State() != Paused {
		t.Fatalf("State = %v, expected %v", s.State(), Paused)
	}
	if !s.HUD().Showing(BannerPaused) {
		t.Error("paused banner should be shown")
	}

	clock.AdvanceMillis(500)
	mustTick(t, s, idle())
	if cam.Pos.X != 0 {
		t.Errorf("camera x = %d, expected no scroll while paused", cam.Pos.X)
	}

	mustTick(t, s, press(core.ActionPause))
	if s.State() != Playing {
		t.Errorf("State = %v, expected %v", s.State(), Playing)
	}
	if s.HUD().Showing(BannerPaused) {
		t.Error("paused banner should be removed on resume")
	}
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("pause events = %v, expected [true false]", changes)
	}
}

func TestCameraScrollAndScore(t *testing.T) {
	s, clock := startedSession(t, nil)
	cam := testCamera(t, s)
	p, _ := testPlayer(t, s)

	for i := 1; i <= 5; i++ {
		clock.AdvanceMillis(int64(s.cfg.Camera.ScrollIntervalMs))
		mustTick(t, s, idle())
		if cam.Pos.X != i {
			t.Fatalf("camera x = %d, expected %d", cam.Pos.X, i)
		}
		if p.Distance != cam.Pos.X+s.cfg.Player.XOffset {
			t.Errorf("Distance = %d, expected %d", p.Distance, cam.Pos.X+s.cfg.Player.XOffset)
		}
		if s.Score() != p.Distance-s.cfg.Player.XOffset {
			t.Errorf("Score = %d, expected %d", s.Score(), p.Distance-s.cfg.Player.XOffset)
		}
	}
}

func TestScoreInvariantOverLongRun(t *testing.T) {
	s, clock := startedSession(t, func(cfg *config.RunnerConfig) {
		cfg.Obstacles.MinWaitMs = 300
		cfg.Obstacles.MaxWaitMs = 900
		cfg.Pickups.IntervalMs = 500
		cfg.World.AdvanceIntervalMs = 250
	})
	last := 0
	for i := 0; i < 2000 && s.State() == Playing; i++ {
		clock.AdvanceMillis(int64(5 + i%30))
		in := idle()
		if i%40 == 0 {
			in = press(core.ActionJump)
		}
		mustTick(t, s, in)
		if s.State() != Playing {
			break
		}
		p, _ := testPlayer(t, s)
		if s.Score() != p.Distance-s.cfg.Player.XOffset {
			t.Fatalf("tick %d: Score = %d, expected %d", i, s.Score(), p.Distance-s.cfg.Player.XOffset)
		}
		if s.Score() < last {
			t.Fatalf("tick %d: score went down from %d to %d", i, last, s.Score())
		}
		last = s.Score()
		if p.Lives < 0 || p.Lives > s.cfg.Player.MaxLives {
			t.Fatalf("tick %d: Lives = %d out of range", i, p.Lives)
		}
	}
}

func TestObstacleSpawnCadence(t *testing.T) {
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.Obstacles.MinWaitMs = 1000
		cfg.Obstacles.MaxWaitMs = 1000
		cfg.Obstacles.ElevatedChance = 0
	})
	s.spawn.NextObstacleWaitMs = 1000

	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if n := countKind(s, KindObstacle); n != 0 {
		t.Errorf("%d obstacles spawned while waiting, expected 0", n)
	}
	if ms := s.spawn.ObstacleTimer.ElapsedMillis(); ms != 0 {
		t.Errorf("obstacle timer = %dms, expected a restart even without a spawn", ms)
	}

	mustTick(t, s, anyKey())
	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())

	rows := ecs.Query2(s.world, func(_ ecs.Entity, tag *Tag, _ *Transform) bool { return tag.Kind == KindObstacle })
	if len(rows) != 1 {
		t.Fatalf("%d obstacles, expected 1", len(rows))
	}
	cam := testCamera(t, s)
	expected := core.Point{X: cam.Pos.X + s.width + 1, Y: s.groundRow()}
	if rows[0].B.Pos != expected {
		t.Errorf("obstacle at %v, expected %v", rows[0].B.Pos, expected)
	}
	if ecs.Has[Moveable](s.world, rows[0].Entity) {
		t.Error("ground obstacles should not drift")
	}
}

func TestElevatedObstacleDrifts(t *testing.T) {
	s, clock := startedSession(t, func(cfg *config.RunnerConfig) {
		cfg.Obstacles.MinWaitMs = 50
		cfg.Obstacles.MaxWaitMs = 50
		cfg.Obstacles.ElevatedChance = 1
		cfg.Obstacles.MinMoveIntervalMs = 200
		cfg.Obstacles.MaxMoveIntervalMs = 200
	})
	s.spawn.NextObstacleWaitMs = 50

	clock.AdvanceMillis(50)
	mustTick(t, s, idle())
	rows := ecs.Query3(s.world, func(_ ecs.Entity, _ *Moveable, tag *Tag, _ *Transform) bool {
		return tag.Kind == KindObstacle
	})
	if len(rows) != 1 {
		t.Fatalf("%d moving obstacles, expected 1", len(rows))
	}
	pos := rows[0].C
	if pos.Pos.Y != s.groundRow()-s.cfg.Obstacles.ElevatedHeight {
		t.Errorf("obstacle row = %d, expected %d", pos.Pos.Y, s.groundRow()-s.cfg.Obstacles.ElevatedHeight)
	}

	// Stop further spawns and scrolling so only the drift moves it.
	s.spawn.NextObstacleWaitMs = never
	s.cfg.Camera.ScrollIntervalMs = never
	startX := pos.Pos.X

	clock.AdvanceMillis(200)
	mustTick(t, s, idle())
	if pos.Pos.X != startX-1 {
		t.Errorf("obstacle x = %d, expected %d after one drift step", pos.Pos.X, startX-1)
	}
}

func TestCleanupMargin(t *testing.T) {
	s, _ := newTestSession(t, nil)
	cam := testCamera(t, s)
	cam.Pos.X = 50
	margin := s.cfg.Cleanup.Margin

	gone, _ := s.spawnObstacle(core.Point{X: 50 - margin - 1, Y: 0}, 0)
	edge, _ := s.spawnObstacle(core.Point{X: 50 - margin, Y: 0}, 0)
	kept, _ := s.spawnObstacle(core.Point{X: 50 - margin + 1, Y: 0}, 0)
	mustTick(t, s, idle())

	if s.world.Alive(gone) {
		t.Error("obstacle beyond the margin should be destroyed")
	}
	if !s.world.Alive(edge) || !s.world.Alive(kept) {
		t.Error("obstacles within the margin should be kept")
	}
}

func TestNextMarkerDistance(t *testing.T) {
	tests := []struct {
		distance int
		expected int
	}{
		{0, 500},
		{3, 500},
		{499, 500},
		{500, 1000},
		{523, 1000},
	}
	for _, tt := range tests {
		if got := nextMarkerDistance(tt.distance, 500); got != tt.expected {
			t.Errorf("nextMarkerDistance(%d) = %d, expected %d", tt.distance, got, tt.expected)
		}
	}
}

func markerLabels(s *Session) []Label {
	var out []Label
	for _, row := range ecs.Query2[Label, Tag](s.world, nil) {
		if row.B.Kind == KindMarkerPiece {
			out = append(out, *row.A)
		}
	}
	return out
}

func TestDistanceMarkerIdempotent(t *testing.T) {
	s, _ := startedSession(t, nil)
	pieces := countKind(s, KindMarkerPiece)
	if pieces == 0 {
		t.Fatal("a marker should be generated once playing")
	}
	labels := markerLabels(s)
	if len(labels) != 1 || labels[0].Text != "500" {
		t.Fatalf("marker labels = %v, expected one labelled 500", labels)
	}

	for i := 0; i < 5; i++ {
		mustTick(t, s, idle())
	}
	if n := countKind(s, KindMarkerPiece); n != pieces {
		t.Errorf("%d marker pieces, expected %d with no new marker", n, pieces)
	}

	// Scroll past the marker: cleanup runs after generation, so the next
	// marker appears one tick later at the next multiple.
	cam := testCamera(t, s)
	cam.Pos.X = 520
	mustTick(t, s, idle())
	if n := countKind(s, KindMarkerPiece); n != 0 {
		t.Errorf("%d marker pieces, expected the old marker cleaned up", n)
	}
	mustTick(t, s, idle())
	labels = markerLabels(s)
	if len(labels) != 1 || labels[0].Text != "1000" {
		t.Errorf("marker labels = %v, expected one labelled 1000", labels)
	}
}

func TestTimeOfDayEventsAndWindows(t *testing.T) {
	var changes []TimeOfDayChange
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.World.StartHour = 9
		cfg.World.AdvanceIntervalMs = 1000
	})
	s.events.Subscribe(EventTimeOfDayChanged, func(ev ecs.Event) error {
		changes = append(changes, ev.Payload.(TimeOfDayChange))
		return nil
	})
	total := countKind(s, KindWindow)
	if total == 0 {
		t.Fatal("no window cells were built")
	}

	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if s.Hour() != 10 || len(changes) != 0 {
		t.Fatalf("hour %d with %d changes, expected 10 with none", s.Hour(), len(changes))
	}

	s.time.Hour = 16
	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if len(changes) != 1 || changes[0].From != Afternoon || changes[0].To != Dusk {
		t.Fatalf("changes = %+v, expected Afternoon to Dusk", changes)
	}
	lit := len(s.windowCells(true))
	if lit != total/5 {
		t.Errorf("%d windows lit at dusk, expected %d", lit, total/5)
	}

	s.time.Hour = 18
	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	expected := lit + (total-lit)/2
	if got := len(s.windowCells(true)); got != expected {
		t.Errorf("%d windows lit at night, expected %d", got, expected)
	}
}

func TestHourWraps(t *testing.T) {
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.World.StartHour = 23
		cfg.World.AdvanceIntervalMs = 1000
	})
	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if s.Hour() != 0 {
		t.Errorf("Hour = %d, expected 0", s.Hour())
	}
}

func TestWindowsTurnOffInDaylight(t *testing.T) {
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.World.StartHour = 10
	})
	all := s.windowCells(false)
	for _, r := range all {
		r.Glyph = WindowGlyph
	}
	total := len(all)

	mustTick(t, s, idle())
	if got := len(s.windowCells(true)); got != total {
		t.Fatalf("%d windows lit, expected none switched off before the interval", got)
	}

	clock.AdvanceMillis(int64(s.cfg.World.WindowOffIntervalMs))
	mustTick(t, s, idle())
	if got := len(s.windowCells(true)); got != total-total/3 {
		t.Errorf("%d windows lit, expected %d", got, total-total/3)
	}
}

func TestStarsFollowBucket(t *testing.T) {
	t.Run("night", func(t *testing.T) {
		s, _ := newTestSession(t, func(cfg *config.RunnerConfig) { cfg.World.StartHour = 0 })
		mustTick(t, s, idle())
		for _, row := range ecs.Query2[Tag, Renderer](s.world, nil) {
			if row.A.Kind != KindStar {
				continue
			}
			if row.B.Glyph != StarGlyph || row.B.FG != starPalette.For(Night) {
				t.Fatalf("star = %q %v, expected %q %v", row.B.Glyph, row.B.FG, StarGlyph, starPalette.For(Night))
			}
		}
	})
	t.Run("day falls back to sky", func(t *testing.T) {
		s, _ := newTestSession(t, func(cfg *config.RunnerConfig) { cfg.World.StartHour = 10 })
		mustTick(t, s, idle())
		if s.time.SkyColor != skyPalette.For(Morning) {
			t.Errorf("sky = %v, expected %v", s.time.SkyColor, skyPalette.For(Morning))
		}
		for _, row := range ecs.Query2[Tag, Renderer](s.world, nil) {
			if row.A.Kind != KindStar {
				continue
			}
			if row.B.Glyph != blankGlyph || row.B.FG != s.time.SkyColor {
				t.Fatalf("star = %q %v, expected blank in sky colour %v", row.B.Glyph, row.B.FG, s.time.SkyColor)
			}
		}
	})
}

func TestStarsFadeIntoChangingSky(t *testing.T) {
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.World.StartHour = 8
		cfg.World.AdvanceIntervalMs = 1000
	})
	dawnStar := starPalette.For(Dawn)
	if !dawnStar.Valid || starPalette.For(Morning).Valid {
		t.Fatal("stars should have a dawn colour and none in the morning")
	}

	mustTick(t, s, idle())
	if s.time.StarColor != dawnStar {
		t.Fatalf("star = %v, expected %v", s.time.StarColor, dawnStar)
	}

	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if s.TimeOfDay() != Morning {
		t.Fatalf("TimeOfDay = %v, expected %v", s.TimeOfDay(), Morning)
	}

	stars := func() []*Renderer {
		var out []*Renderer
		for _, row := range ecs.Query2[Tag, Renderer](s.world, nil) {
			if row.A.Kind == KindStar {
				out = append(out, row.B)
			}
		}
		return out
	}
	if len(stars()) == 0 {
		t.Fatal("no stars were built")
	}
	for _, r := range stars() {
		if r.Glyph != blankGlyph {
			t.Fatalf("star glyph = %q on the bucket change, expected blank", r.Glyph)
		}
	}

	transition := int64(s.cfg.World.TransitionMs)
	clock.AdvanceMillis(transition / 4)
	mustTick(t, s, idle())
	if !s.time.Sky.Active() {
		t.Fatal("sky should still be blending")
	}
	expected := core.Some(dawnStar.Color.Lerp(s.time.SkyColor.Color, 0.25))
	if s.time.StarColor != expected {
		t.Errorf("star = %v, expected %v a quarter of the way to the sky", s.time.StarColor, expected)
	}
	if s.time.StarColor == dawnStar {
		t.Error("star colour should move while the sky is blending")
	}
	for _, r := range stars() {
		if r.Glyph != blankGlyph || r.FG != s.time.StarColor {
			t.Fatalf("star = %q %v, expected blank in %v", r.Glyph, r.FG, s.time.StarColor)
		}
	}

	clock.AdvanceMillis(transition - transition/4)
	mustTick(t, s, idle())
	morningSky := skyPalette.For(Morning)
	if s.time.SkyColor != morningSky || s.time.StarColor != morningSky {
		t.Errorf("sky = %v, star = %v, expected both %v", s.time.SkyColor, s.time.StarColor, morningSky)
	}
}

func TestWindowCadenceRunsThroughTheNight(t *testing.T) {
	s, clock := newTestSession(t, func(cfg *config.RunnerConfig) {
		cfg.World.StartHour = 8
		cfg.World.AdvanceIntervalMs = 1000
	})
	all := s.windowCells(false)
	for _, r := range all {
		r.Glyph = WindowGlyph
	}
	total := len(all)

	mustTick(t, s, idle())
	if got := len(s.windowCells(true)); got != total {
		t.Fatalf("%d windows lit before daylight, expected %d", got, total)
	}

	// The first daylight tick already switches windows off.
	clock.AdvanceMillis(1000)
	mustTick(t, s, idle())
	if !s.TimeOfDay().IsLight() {
		t.Fatalf("TimeOfDay = %v, expected daylight", s.TimeOfDay())
	}
	if got := len(s.windowCells(true)); got != total-total/3 {
		t.Errorf("%d windows lit, expected %d", got, total-total/3)
	}
}

func TestSunPieces(t *testing.T) {
	s, _ := newTestSession(t, func(cfg *config.RunnerConfig) { cfg.World.StartHour = 12 })
	mustTick(t, s, idle())

	var got []core.Point
	for _, row := range ecs.Query2(s.world, func(_ ecs.Entity, tag *Tag, _ *Transform) bool {
		return tag.Kind == KindSunPiece
	}) {
		got = append(got, row.B.Pos)
	}
	expected := []core.Point{{X: 40, Y: 1}, {X: 41, Y: 1}}
	if len(got) != len(expected) {
		t.Fatalf("sun pieces = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sun piece %d at %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestMissingPlayerAbortsTick(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e, _, err := s.player()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	s.world.Destroy(e)
	s.world.Flush()

	err = s.Tick(idle())
	if !errors.Is(err, ecs.ErrMissingSingleton) {
		t.Errorf("Tick error = %v, expected %v", err, ecs.ErrMissingSingleton)
	}
}

func TestCorruptCollision(t *testing.T) {
	s, _ := newTestSession(t, nil)
	player, _, _ := s.player()
	ghost := s.world.Create()
	s.world.Destroy(ghost)
	s.world.Flush()

	c := Collision{A: player, B: ghost, LayerA: CollidePlayer, LayerB: CollideObstacle}
	if _, err := s.resolve(c, CollideObstacle); !errors.Is(err, ErrCorruptCollision) {
		t.Errorf("resolve error = %v, expected %v", err, ErrCorruptCollision)
	}
}

func TestSkylineScroll(t *testing.T) {
	s, clock := startedSession(t, nil)
	clock.AdvanceMillis(int64(s.cfg.Skyline.ScrollIntervalMs))
	mustTick(t, s, idle())

	for _, row := range ecs.Query1[FollowCamera](s.world, nil) {
		f := row.A
		screenX := f.Base.X + f.Offset.X
		if screenX < 0 || screenX >= s.skyline.Span {
			t.Fatalf("building cell at %d, expected within [0, %d)", screenX, s.skyline.Span)
		}
		if f.Offset.X != -1 && f.Offset.X != s.skyline.Span-1 {
			t.Fatalf("Offset.X = %d, expected -1 or a wrap", f.Offset.X)
		}
	}
}

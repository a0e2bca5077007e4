package runner

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/ecs"
	"github.com/vovakirdan/tui-runner/internal/timer"
)

// System priorities. Lower runs first.
const (
	prioCollide    = 0
	prioLifecycle  = 10
	prioGround     = 20
	prioGravity    = 30
	prioJump       = 40
	prioVelocity   = 50
	prioCollisions = 60
	prioScroll     = 70
	prioScore      = 80
	prioSpawn      = 90
	prioCleanup    = 100
	prioWorld      = 110
	prioOutcome    = 120
	prioHUD        = 130
	prioResync     = ecs.PriorityLate
)

// GameState is the coarse lifecycle mode.
type GameState int

const (
	WaitingToStart GameState = iota
	Playing
	Paused
	Victory
	Defeat
)

func (s GameState) String() string {
	switch s {
	case WaitingToStart:
		return "waiting"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// GameManager owns score and lifecycle state.
type GameManager struct {
	Score       int
	State       GameState
	ScrollTimer timer.Timer
}

// IsGameOver reports whether the run has ended.
func (m *GameManager) IsGameOver() bool {
	return m.State == Victory || m.State == Defeat
}

// WorldTime is the day-night clock and its per-subject colour blends.
type WorldTime struct {
	Hour         int
	AdvanceTimer timer.Timer
	WindowTimer  timer.Timer // cadence of daylight window switch-off

	Sky, Stars, Sun, Windows ColorBlend

	SkyColor    core.NullColor
	StarColor   core.NullColor
	SunColor    core.NullColor
	WindowColor core.NullColor
}

// SpawnManager holds the timers that drive procedural objects.
type SpawnManager struct {
	ObstacleTimer      timer.Timer
	NextObstacleWaitMs int64
	PickupTimer        timer.Timer
}

// Options configures a Session.
type Options struct {
	Config config.RunnerConfig
	Width  int // viewport width; 0 uses the config
	Height int // viewport height; 0 uses the config
	Seed   int64
	Clock  timer.Clock // nil uses the wall clock
	Logger *log.Logger // nil discards
}

// Session is one running world: the entity store, the scheduler and the
// singleton records every system reads and writes.
type Session struct {
	cfg    config.RunnerConfig
	width  int
	height int
	hours  Hours
	clock  timer.Clock
	rng    *rand.Rand
	log    *log.Logger

	world  *ecs.World
	events *ecs.EventQueue
	sched  *ecs.Scheduler

	input      core.InputFrame
	collisions []Collision

	game    GameManager
	time    WorldTime
	spawn   SpawnManager
	hud     HUD
	skyline skyline

	restartPending bool
	runTimer       timer.Timer
	finished       *core.RunSummary
}

// NewSession builds the world and registers every system.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if opts.Width > 0 {
		cfg.Viewport.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Viewport.Height = opts.Height
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = timer.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:    cfg,
		width:  cfg.Viewport.Width,
		height: cfg.Viewport.Height,
		hours:  Hours{Sunrise: cfg.World.Sunrise, Noon: cfg.World.Noon, Sunset: cfg.World.Sunset},
		clock:  clock,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		log:    logger,
		world:  ecs.NewWorld(),
		events: ecs.NewEventQueue(),
		input:  core.NewInputFrame(),
	}
	s.sched = ecs.NewScheduler(s.world, s.events)

	s.game = GameManager{State: WaitingToStart, ScrollTimer: timer.StartNew(clock)}
	transition := int64(cfg.World.TransitionMs)
	s.time = WorldTime{
		Hour:         cfg.World.StartHour,
		AdvanceTimer: timer.StartNew(clock),
		WindowTimer:  timer.StartNew(clock),
		Sky:          NewColorBlend(clock, transition),
		Stars:        NewColorBlend(clock, transition),
		Sun:          NewColorBlend(clock, transition),
		Windows:      NewColorBlend(clock, transition),
	}
	s.spawn = SpawnManager{
		ObstacleTimer: timer.StartNew(clock),
		PickupTimer:   timer.StartNew(clock),
	}
	s.spawn.NextObstacleWaitMs = s.drawObstacleWait()
	s.runTimer = timer.New(clock)

	if err := s.setupWorld(); err != nil {
		return nil, err
	}
	s.registerSystems()
	s.subscribe()

	// Resolve camera-relative positions before the first collision pass.
	if err := s.resyncAnchors(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) registerSystems() {
	s.sched.Register(
		ecs.NewSystem("collide", prioCollide, s.detectCollisions),
		ecs.NewSystem("lifecycle-input", prioLifecycle, s.handleLifecycleInput),
		ecs.NewSystem("ground", prioGround, s.detectGround),
		ecs.NewSystem("gravity", prioGravity, s.applyGravity),
		ecs.NewSystem("jump", prioJump, s.handleJump),
		ecs.NewSystem("velocity", prioVelocity, s.applyVelocity),
		ecs.NewSystem("player-collisions", prioCollisions, s.handlePlayerCollisions),
		ecs.NewSystem("camera-scroll", prioScroll, s.scrollCamera),
		ecs.NewSystem("score", prioScore, s.updateDistanceAndScore),
		ecs.NewSystem("spawn-obstacles", prioSpawn, s.spawnObstacles),
		ecs.NewSystem("spawn-pickups", prioSpawn, s.spawnPickups),
		ecs.NewSystem("moveables", prioSpawn, s.moveObstacles),
		ecs.NewSystem("distance-markers", prioSpawn, s.generateMarkers),
		ecs.NewSystem("cleanup", prioCleanup, s.cleanupBehindCamera),
		ecs.NewSystem("world-clock", prioWorld, s.advanceWorldTime),
		ecs.NewSystem("world-colours", prioWorld, s.blendWorldColours),
		ecs.NewSystem("windows-off", prioWorld, s.turnOffWindows),
		ecs.NewSystem("sun", prioWorld, s.updateSun),
		ecs.NewSystem("skyline", prioWorld, s.scrollSkyline),
		ecs.NewSystem("outcome", prioOutcome, s.evaluateOutcome),
		ecs.NewSystem("hud", prioHUD, s.updateHUD),
		ecs.NewSystem("anchor-resync", prioResync, s.resyncAnchors),
	)
}

func (s *Session) subscribe() {
	s.events.Subscribe(EventRestart, s.onRestart)
	s.events.Subscribe(EventTimeOfDayChanged, s.onTimeOfDayChanged)
	s.events.Subscribe(EventPauseChanged, s.onPauseChanged)
	s.events.Subscribe(EventVictory, s.onGameOver)
	s.events.Subscribe(EventDefeat, s.onGameOver)
}

// Tick runs one simulation step with the given input. On error the rest of
// the tick is skipped and the world keeps its partially updated state.
func (s *Session) Tick(in core.InputFrame) error {
	s.input = in
	if err := s.sched.Tick(); err != nil {
		s.log.Error("tick aborted", "tick", s.sched.Ticks(), "err", err)
		return err
	}
	return nil
}

// playing reports whether world motion is enabled this tick.
func (s *Session) playing() bool {
	return s.game.State == Playing && !s.restartPending
}

// player returns the single player entity.
func (s *Session) player() (ecs.Entity, *Player, error) {
	e, p, err := ecs.Single[Player](s.world, nil)
	if err != nil {
		return ecs.Entity{}, nil, fmt.Errorf("runner: player: %w", err)
	}
	return e, p, nil
}

// camera returns the main camera's transform.
func (s *Session) camera() (*Transform, error) {
	e, _, err := ecs.Single(s.world, func(_ ecs.Entity, c *Camera) bool { return c.Main })
	if err != nil {
		return nil, fmt.Errorf("runner: main camera: %w", err)
	}
	tr, ok := ecs.Get[Transform](s.world, e)
	if !ok {
		return nil, errMissing("main camera transform")
	}
	return tr, nil
}

func errMissing(what string) error {
	return fmt.Errorf("runner: %s: %w", what, ecs.ErrMissingSingleton)
}

func (s *Session) drawObstacleWait() int64 {
	return int64(randRange(s.rng, s.cfg.Obstacles.MinWaitMs, s.cfg.Obstacles.MaxWaitMs))
}

// randRange returns a uniform int in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Accessors used by the game wrapper, rendering and tests.

// State returns the lifecycle state.
func (s *Session) State() GameState { return s.game.State }

// Score returns the current score.
func (s *Session) Score() int { return s.game.Score }

// Hour returns the world clock hour.
func (s *Session) Hour() int { return s.time.Hour }

// TimeOfDay returns the current bucket.
func (s *Session) TimeOfDay() TimeOfDay { return BucketOf(s.time.Hour, s.hours) }

// Lives returns the player's lives, or 0 if the player is missing.
func (s *Session) Lives() int {
	if _, p, err := s.player(); err == nil {
		return p.Lives
	}
	return 0
}

// TakeFinished returns the summary of a run that ended since the last call.
func (s *Session) TakeFinished() *core.RunSummary {
	r := s.finished
	s.finished = nil
	return r
}

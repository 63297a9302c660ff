// Package game wires the match-resolution systems into a playable session
package game

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tile-chain/board"
	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/engine"
	"github.com/lixenwraith/tile-chain/event"
	"github.com/lixenwraith/tile-chain/status"
	"github.com/lixenwraith/tile-chain/systems"
	"github.com/lixenwraith/tile-chain/vmath"
)

// Options configures collaborators not covered by Config
type Options struct {
	// Clock drives the scheduler, nil selects the monotonic clock
	Clock engine.TimeProvider
	// Logger receives structured diagnostics, zero value discards
	Logger zerolog.Logger
	// Status receives metrics, nil allocates a private registry
	Status *status.Registry
}

// Session owns one game: board, scheduler, systems and countdown
//
// Threading:
//   - Input handlers, Tick and Dispatch must be called from one goroutine (the front-end loop)
//   - Scheduled tasks only run inside Tick, so no state here needs locks
type Session struct {
	ID string

	cfg   *config.Config
	log   zerolog.Logger
	clock engine.TimeProvider
	rng   *rand.Rand

	res    *systems.Resources
	Router *event.Router

	Score *systems.ScoreSystem
	Spawn *systems.SpawnSystem
	Clear *systems.ClearSystem
	Chain *systems.ChainSystem
	Timer *Timer

	statSession *status.AtomicString
	statExpired *atomic.Bool
}

// NewSession builds a session, call Start to populate the board
func NewSession(cfg *config.Config, opts Options) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	queue := event.NewEventQueue()
	res := &systems.Resources{
		Board:  board.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.TileRadius, cfg.Board.PickRadius),
		Sched:  engine.NewScheduler(opts.Clock, opts.Logger),
		Events: queue,
		Status: opts.Status,
		Config: cfg,
		Log:    opts.Logger,
	}

	s := &Session{
		cfg:    cfg,
		log:    opts.Logger.With().Str("system", "session").Logger(),
		clock:  opts.Clock,
		rng:    rand.New(rand.NewSource(seed)),
		res:    res,
		Router: event.NewRouter(queue),

		statSession: opts.Status.Strings.Get(status.KeySessionID),
		statExpired: opts.Status.Bools.Get(status.KeySessionExpired),
	}
	s.Score = systems.NewScoreSystem(res)
	s.Spawn = systems.NewSpawnSystem(res, s.rng)
	s.Clear = systems.NewClearSystem(res, s.Score, s.Spawn)
	s.Chain = systems.NewChainSystem(res, s.Clear)
	s.Timer = newTimer(res.Sched, s.log, s.expire)
	s.Clear.SetTimeExtender(s.Timer)
	return s
}

// Start begins a fresh session, restarting drops every in-flight task of the previous one
func (s *Session) Start() {
	if s.ID != "" {
		s.res.Sched.Stop()
		s.res.Sched = engine.NewScheduler(s.clock, s.res.Log)
		s.Timer.sched = s.res.Sched
	}

	s.ID = uuid.NewString()
	s.statSession.Store(s.ID)
	s.statExpired.Store(false)

	s.res.Board.Reset()
	s.Spawn.Init()
	s.Clear.Init()
	s.Score.Reset()
	s.Chain.SetEnabled(true)
	s.Spawn.SpawnLive(s.cfg.Spawn.InitialPopulation)
	s.Spawn.EnsureMinimumPopulation(s.cfg.Spawn.MinPopulation)
	s.Timer.start(time.Duration(s.cfg.Session.Seconds) * time.Second)

	s.log.Info().Str("session", s.ID).Int("tiles", s.res.Board.LiveCount()).Msg("session started")
	s.res.Events.Emit(event.EventSessionStarted, &event.SessionPayload{SessionID: s.ID}, s.res.Sched.Now())
}

func (s *Session) expire() {
	s.Chain.SetEnabled(false)
	s.statExpired.Store(true)
	s.res.Events.Emit(event.EventSessionExpired, &event.SessionPayload{SessionID: s.ID, Score: s.Score.Total()}, s.res.Sched.Now())
}

// OnPress forwards a press in board coordinates
func (s *Session) OnPress(pos vmath.Vec2F) {
	s.Chain.OnPress(pos)
}

// OnHold forwards a drag sample in board coordinates
func (s *Session) OnHold(pos vmath.Vec2F) {
	s.Chain.OnHold(pos)
}

// OnRelease forwards a release, returning the started batch if the chain cleared
func (s *Session) OnRelease(pos vmath.Vec2F) *systems.Batch {
	return s.Chain.OnRelease(pos)
}

// Tick runs every task due at the current clock time
func (s *Session) Tick() int {
	return s.res.Sched.Pump()
}

// Dispatch routes queued events to registered handlers on the caller's goroutine
func (s *Session) Dispatch() int {
	return s.Router.DispatchAll()
}

// Register subscribes a handler to session events
func (s *Session) Register(h event.Handler) {
	s.Router.Register(h)
}

func (s *Session) Board() *board.Board          { return s.res.Board }
func (s *Session) Scheduler() *engine.Scheduler { return s.res.Sched }
func (s *Session) Status() *status.Registry     { return s.res.Status }
func (s *Session) Config() *config.Config       { return s.cfg }
func (s *Session) Expired() bool                { return s.Timer.Expired() }

// Idle reports whether no clearance batch, pour or cascade is pending
func (s *Session) Idle() bool {
	return s.Clear.InFlight() == 0 && !s.Spawn.Animating()
}

// Stop releases every suspended task, the session cannot be used afterwards
func (s *Session) Stop() {
	s.res.Sched.Stop()
}

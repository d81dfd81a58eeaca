// Package game runs a single play-through: it owns every entity, applies input,
// resolves collisions and drives the level state machine.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

var (
	// ErrNotAwaitingUpgrade is returned by ChooseUpgrade outside the power-up choice.
	ErrNotAwaitingUpgrade = errors.New("session is not awaiting an upgrade choice")
	// ErrUnknownUpgrade is returned for an Upgrade value outside Upgrades.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
)

// ScoreSink receives the final score when a run ends.
type ScoreSink interface {
	Submit(score int) error
}

// ScoreSinkFunc adapts a function to ScoreSink.
type ScoreSinkFunc func(score int) error

// Submit calls f(score).
func (f ScoreSinkFunc) Submit(score int) error { return f(score) }

// State is the run's scalar state, read by the HUD.
type State struct {
	Level         int
	Levels        int
	Score         int
	Health        int
	MaxHealth     int
	TimeLeft      float64 // Seconds left in a timed level
	PowerUp       PowerUp
	PowerUpExpiry float64 // Elapsed time at which PowerUp ends
	Elapsed       float64 // Seconds of play since the run started
	Phase         Phase
	Won           bool
	Damage        int     // Damage dealt per bullet
	FireInterval  float64 // Seconds between shots, before power-ups
}

// PowerUpLeft returns the seconds remaining on the active power-up.
func (st State) PowerUpLeft() float64 {
	if st.PowerUp == PowerUpNone {
		return 0
	}
	return max(st.PowerUpExpiry-st.Elapsed, 0)
}

// Options configures a new Session.
type Options struct {
	Tuning config.Tuning
	Hull   catalog.Hull
	Rand   *rand.Rand  // Defaults to a time-seeded source
	Sink   ScoreSink   // Optional; receives the final score once
	Logger *log.Logger // Defaults to log.Default()
}

// Session is one run of the game. It is not safe for concurrent use; a single
// loop driver calls Step once per frame.
type Session struct {
	tuning config.Tuning
	field  physics.Rect
	rng    *rand.Rand
	sink   ScoreSink
	logger *log.Logger

	state     State
	player    *object.Player
	bullets   []*object.Bullet
	asteroids []*object.Asteroid
	drops     []*object.Drop
	particles []object.Object
	boss      *object.Boss
	spawner   *object.AsteroidSpawner

	pending   []object.Object
	events    []Event
	submitted bool
}

// NewSession creates a run and starts level 1.
func NewSession(opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	t := opts.Tuning
	field := physics.NewRect(t.FieldWidth, t.FieldHeight)

	s := &Session{
		tuning: t,
		field:  field,
		rng:    opts.Rand,
		sink:   opts.Sink,
		logger: opts.Logger,
		state: State{
			Levels:       t.Levels.Count,
			Health:       t.Player.MaxHealth,
			MaxHealth:    t.Player.MaxHealth,
			Damage:       t.Player.Damage,
			FireInterval: t.Player.FireInterval,
		},
		player: object.NewPlayer(
			physics.Vec2{X: field.Center().X, Y: field.MaxY - t.Player.Radius*3},
			t.Player.Radius,
			opts.Hull,
		),
	}
	s.startLevel(1)
	return s
}

// Spawn queues obj; it joins its entity list when the frame completes.
func (s *Session) Spawn(obj object.Object) {
	s.pending = append(s.pending, obj)
}

// State returns a copy of the run's scalar state.
func (s *Session) State() State { return s.state }

// Field returns the play area.
func (s *Session) Field() physics.Rect { return s.field }

// Player returns the player's ship.
func (s *Session) Player() *object.Player { return s.player }

// Bullets returns the live bullets. The slice is owned by the session.
func (s *Session) Bullets() []*object.Bullet { return s.bullets }

// Asteroids returns the live asteroids. The slice is owned by the session.
func (s *Session) Asteroids() []*object.Asteroid { return s.asteroids }

// Drops returns the live pickups. The slice is owned by the session.
func (s *Session) Drops() []*object.Drop { return s.drops }

// Boss returns the boss, or nil outside the boss fight.
func (s *Session) Boss() *object.Boss { return s.boss }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.state.Phase == PhaseGameOver }

// Step advances the run by dt and returns the events of the frame.
// It does nothing while the game is over or an upgrade is being chosen.
func (s *Session) Step(dt time.Duration, in input.Input) []Event {
	if s.state.Phase == PhaseGameOver || s.state.Phase == PhasePowerupChoice {
		return s.takeEvents()
	}
	sec := dt.Seconds()
	ctx := object.UpdateContext{
		Delta:   dt,
		Field:   s.field,
		Spawner: s,
		Rand:    s.rng,
	}

	s.advanceClock(sec)
	s.steerPlayer(ctx, in)

	s.spawner.Update(ctx)
	if s.boss != nil {
		s.boss.Update(ctx)
	}

	s.updateEntities(ctx)
	s.checkCollisions(ctx)
	s.sweep()
	s.flushSpawned()

	if s.state.Phase == PhaseLevelRunning {
		s.tickLevelTimer(sec)
	}
	return s.takeEvents()
}

// ChooseUpgrade applies a permanent upgrade and starts the next level.
func (s *Session) ChooseUpgrade(u Upgrade) error {
	if s.state.Phase != PhasePowerupChoice {
		return ErrNotAwaitingUpgrade
	}
	if err := s.applyUpgrade(u); err != nil {
		return err
	}
	s.startLevel(s.state.Level + 1)
	return nil
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

func (s *Session) takeEvents() []Event {
	evs := s.events
	s.events = nil
	return evs
}

func (s *Session) steerPlayer(ctx object.UpdateContext, in input.Input) {
	var dir physics.Vec2
	if in.Left {
		dir.X--
	}
	if in.Right {
		dir.X++
	}
	if in.Up {
		dir.Y--
	}
	if in.Down {
		dir.Y++
	}
	sec := ctx.Delta.Seconds()
	s.player.Steer(dir, s.tuning.Player.Speed*s.speedMultiplier(), sec, s.field)

	if s.player.TryFire(in.Fire, s.fireInterval(), sec) {
		t := s.tuning.Bullet
		muzzle := s.player.Muzzle()
		s.Spawn(object.NewBullet(muzzle, t.Speed, t.Lifetime, t.Radius, s.state.Damage))
		s.emit(Event{Kind: EventShot, Pos: muzzle})
	}
}

// updateEntities is the entity updater: every entity moves, then each list is
// compacted in place so no removed member survives.
func (s *Session) updateEntities(ctx object.UpdateContext) {
	s.player.Update(ctx)
	s.bullets = compact(s.bullets, func(b *object.Bullet) bool { return b.Update(ctx) })
	s.asteroids = compact(s.asteroids, func(a *object.Asteroid) bool { return a.Update(ctx) })
	s.drops = compact(s.drops, func(d *object.Drop) bool { return d.Update(ctx) })
	s.particles = compact(s.particles, func(p object.Object) bool { return p.Update(ctx) })
}

// sweep drops entities consumed by collisions this frame.
func (s *Session) sweep() {
	s.bullets = compact(s.bullets, (*object.Bullet).Spent)
	s.asteroids = compact(s.asteroids, (*object.Asteroid).Destroyed)
	s.drops = compact(s.drops, (*object.Drop).Collected)
	if s.boss != nil && s.boss.Defeated() {
		s.boss = nil
	}
}

// flushSpawned moves queued objects into their lists.
func (s *Session) flushSpawned() {
	for _, obj := range s.pending {
		switch o := obj.(type) {
		case *object.Bullet:
			s.bullets = append(s.bullets, o)
		case *object.Asteroid:
			s.asteroids = append(s.asteroids, o)
		case *object.Drop:
			s.drops = append(s.drops, o)
		default:
			s.particles = append(s.particles, o)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// compact keeps the members of list for which remove is false, preserving
// order, and releases the others back to their pools.
func compact[T object.Object](list []T, remove func(T) bool) []T {
	kept := list[:0]
	for _, obj := range list {
		if remove(obj) {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(list[len(kept):])
	return kept
}

// endRun enters GameOver and submits the score. Later calls are ignored.
func (s *Session) endRun(won bool) {
	if s.state.Phase == PhaseGameOver {
		return
	}
	s.state.Phase = PhaseGameOver
	s.state.Won = won
	s.emit(Event{Kind: EventGameOver, Won: won, Points: s.state.Score})
	s.logger.Info("run ended", "won", won, "score", s.state.Score, "level", s.state.Level)

	if s.sink == nil || s.submitted {
		return
	}
	s.submitted = true
	if err := s.sink.Submit(s.state.Score); err != nil {
		s.logger.Warn("failed to record score", "score", s.state.Score, "err", err)
	}
}

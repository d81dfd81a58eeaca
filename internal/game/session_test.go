package game

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

const frame = time.Second / 60

type sinkRecorder struct {
	scores []int
	err    error
}

func (r *sinkRecorder) Submit(score int) error {
	r.scores = append(r.scores, score)
	return r.err
}

// quietTuning disables random drops and timed spawns so tests place entities by hand.
func quietTuning() config.Tuning {
	t := config.DefaultTuning()
	t.Drops.HealthChance = 0
	t.PowerUps.DropChance = 0
	t.Asteroids.SpawnInterval = 1000
	return t
}

func newTestSession(t *testing.T, tun config.Tuning, sink ScoreSink) *Session {
	t.Helper()
	if err := tun.Validate(); err != nil {
		t.Fatalf("test tuning invalid: %v", err)
	}
	return NewSession(Options{
		Tuning: tun,
		Rand:   rand.New(rand.NewSource(42)),
		Sink:   sink,
		Logger: log.New(io.Discard),
	})
}

// placeAsteroid adds a motionless asteroid at pos.
func placeAsteroid(s *Session, class object.AsteroidClass, pos physics.Vec2) *object.Asteroid {
	a := object.NewAsteroid(class, class.Stats(s.tuning.Asteroids), pos, s.rng)
	a.Vel = physics.Vec2{}
	s.asteroids = append(s.asteroids, a)
	return a
}

func TestFiveCollisionsEndRunOnce(t *testing.T) {
	sink := &sinkRecorder{}
	s := newTestSession(t, quietTuning(), sink)

	var all []Event
	for i := 1; i <= 5; i++ {
		placeAsteroid(s, object.AsteroidSmall, s.Player().Pos)
		all = append(all, s.Step(frame, input.Input{})...)
		if want := 100 - 20*i; s.State().Health != want {
			t.Fatalf("after collision %d health = %d, want %d", i, s.State().Health, want)
		}
	}

	if got := s.State().Phase; got != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", got)
	}
	if s.State().Won {
		t.Error("run should be lost")
	}

	// Further frames are no-ops.
	placeAsteroid(s, object.AsteroidSmall, s.Player().Pos)
	elapsed := s.State().Elapsed
	for i := 0; i < 10; i++ {
		all = append(all, s.Step(frame, input.Input{})...)
	}
	if s.State().Elapsed != elapsed || s.State().Health != 0 {
		t.Error("Step changed state after game over")
	}

	if n := CountEvents(all, EventGameOver); n != 1 {
		t.Errorf("game over fired %d times, want 1", n)
	}
	if n := CountEvents(all, EventPlayerHit); n != 5 {
		t.Errorf("player hit %d times, want 5", n)
	}
	if len(sink.scores) != 1 {
		t.Errorf("score submitted %d times, want 1", len(sink.scores))
	}
}

func TestSinkErrorDoesNotStopRun(t *testing.T) {
	sink := &sinkRecorder{err: errors.New("disk full")}
	tun := quietTuning()
	tun.Player.MaxHealth = 20
	s := newTestSession(t, tun, sink)

	placeAsteroid(s, object.AsteroidSmall, s.Player().Pos)
	evs := s.Step(frame, input.Input{})
	if CountEvents(evs, EventGameOver) != 1 || len(sink.scores) != 1 {
		t.Errorf("events %v, submissions %d", evs, len(sink.scores))
	}
}

// runUntilPhaseChange steps until the phase leaves LevelRunning.
func runUntilPhaseChange(t *testing.T, s *Session) []Event {
	t.Helper()
	var evs []Event
	for i := 0; i < 10000 && s.State().Phase == PhaseLevelRunning; i++ {
		evs = append(evs, s.Step(frame, input.Input{})...)
	}
	return evs
}

func TestLevelTimeoutOpensUpgradeChoice(t *testing.T) {
	tun := quietTuning()
	tun.Levels.Duration = 1
	s := newTestSession(t, tun, nil)

	for level := 1; level <= 3; level++ {
		if got := s.State().Level; got != level {
			t.Fatalf("level = %d, want %d", got, level)
		}
		evs := runUntilPhaseChange(t, s)
		if got := s.State().Phase; got != PhasePowerupChoice {
			t.Fatalf("level %d ended in %v, want power-up choice", level, got)
		}
		if CountEvents(evs, EventLevelComplete) != 1 || CountEvents(evs, EventGameOver) != 0 {
			t.Fatalf("level %d events: %v", level, evs)
		}
		if level < 3 {
			if err := s.ChooseUpgrade(UpgradeAttackDamage); err != nil {
				t.Fatalf("ChooseUpgrade: %v", err)
			}
		}
	}

	if len(s.Asteroids()) != 0 || len(s.Bullets()) != 0 {
		t.Error("entering the upgrade choice should clear asteroids and bullets")
	}
	st := s.State()
	if evs := s.Step(frame, input.Input{Fire: true}); len(evs) != 0 || s.State() != st {
		t.Error("Step should be a no-op during the upgrade choice")
	}
	if got := s.State().Damage; got != 3 {
		t.Errorf("damage after two upgrades = %d, want 3", got)
	}
}

func TestFinalLevelStartsBossFight(t *testing.T) {
	tun := quietTuning()
	tun.Levels.Count = 2
	tun.Levels.Duration = 0.5
	s := newTestSession(t, tun, nil)

	runUntilPhaseChange(t, s)
	if err := s.ChooseUpgrade(UpgradeHealthBoost); err != nil {
		t.Fatal(err)
	}
	evs := s.Step(frame, input.Input{})
	if s.State().Phase != PhaseBossFight || s.Boss() == nil {
		t.Fatalf("phase = %v, boss = %v; want boss fight", s.State().Phase, s.Boss())
	}
	if CountEvents(evs, EventBossSpawned) != 1 {
		t.Errorf("events = %v, want one boss spawn", evs)
	}

	// No countdown in the boss fight.
	for i := 0; i < 120; i++ {
		s.Step(frame, input.Input{})
	}
	if s.State().Phase != PhaseBossFight {
		t.Errorf("phase = %v after 2s, want boss fight", s.State().Phase)
	}
}

func TestChooseUpgrade(t *testing.T) {
	tun := quietTuning()
	s := newTestSession(t, tun, nil)

	if err := s.ChooseUpgrade(UpgradeAttackSpeed); !errors.Is(err, ErrNotAwaitingUpgrade) {
		t.Fatalf("ChooseUpgrade while running = %v, want ErrNotAwaitingUpgrade", err)
	}

	s.state.Phase = PhasePowerupChoice
	if err := s.ChooseUpgrade(Upgrade(99)); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("ChooseUpgrade(99) = %v, want ErrUnknownUpgrade", err)
	}
	if s.State().Phase != PhasePowerupChoice || s.State().Level != 1 {
		t.Fatal("failed upgrade should leave the session waiting")
	}

	if err := s.ChooseUpgrade(UpgradeAttackSpeed); err != nil {
		t.Fatal(err)
	}
	if got, want := s.State().FireInterval, tun.Player.FireInterval*0.8; math.Abs(got-want) > 1e-9 {
		t.Errorf("fire interval = %v, want %v", got, want)
	}
	if s.State().Level != 2 || s.State().Phase != PhaseLevelRunning {
		t.Errorf("after upgrade level %d phase %v, want level 2 running", s.State().Level, s.State().Phase)
	}
}

func TestUpgradeEffects(t *testing.T) {
	tun := quietTuning()
	s := newTestSession(t, tun, nil)

	for i := 0; i < 30; i++ {
		if err := s.applyUpgrade(UpgradeAttackSpeed); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.State().FireInterval; got != tun.Player.MinFireInterval {
		t.Errorf("fire interval = %v, want floor %v", got, tun.Player.MinFireInterval)
	}

	s.state.Health = 50
	s.applyUpgrade(UpgradeHealthBoost)
	if got := s.State().Health; got != 80 {
		t.Errorf("health = %d, want 80", got)
	}
	s.applyUpgrade(UpgradeHealthBoost)
	if got := s.State().Health; got != 100 {
		t.Errorf("health = %d, want clamped to 100", got)
	}
}

func TestBossDefeatWins(t *testing.T) {
	tun := quietTuning()
	tun.Levels.Count = 1
	tun.Boss.Health = 3
	sink := &sinkRecorder{}
	s := newTestSession(t, tun, sink)

	boss := s.Boss()
	if boss == nil || s.State().Phase != PhaseBossFight {
		t.Fatal("single-level run should open with the boss")
	}
	for i := 0; i < 3; i++ {
		s.bullets = append(s.bullets, object.NewBullet(boss.Pos, 0, 3, 0.5, 1))
	}
	evs := s.Step(frame, input.Input{})

	st := s.State()
	if st.Phase != PhaseGameOver || !st.Won {
		t.Fatalf("phase = %v won = %v, want won game over", st.Phase, st.Won)
	}
	if st.Score != tun.Boss.Points {
		t.Errorf("score = %d, want %d", st.Score, tun.Boss.Points)
	}
	if CountEvents(evs, EventBossDefeated) != 1 || CountEvents(evs, EventGameOver) != 1 {
		t.Errorf("events = %v", evs)
	}
	if s.Boss() != nil {
		t.Error("defeated boss should be removed")
	}
	if len(sink.scores) != 1 || sink.scores[0] != tun.Boss.Points {
		t.Errorf("submitted %v, want [%d]", sink.scores, tun.Boss.Points)
	}
}

func TestBulletSplitsAsteroid(t *testing.T) {
	tun := quietTuning()
	s := newTestSession(t, tun, nil)

	pos := physics.Vec2{X: 60, Y: 30}
	placeAsteroid(s, object.AsteroidMedium, pos)
	s.bullets = append(s.bullets, object.NewBullet(pos, 0, 3, 0.5, tun.Asteroids.Medium.Health))

	evs := s.Step(frame, input.Input{})
	if CountEvents(evs, EventAsteroidDestroyed) != 1 {
		t.Fatalf("events = %v, want one destroyed asteroid", evs)
	}
	if s.State().Score != tun.Asteroids.Medium.Points {
		t.Errorf("score = %d, want %d", s.State().Score, tun.Asteroids.Medium.Points)
	}
	if len(s.Bullets()) != 0 {
		t.Error("spent bullet should be removed")
	}
	asteroids := s.Asteroids()
	if len(asteroids) != 2 {
		t.Fatalf("got %d asteroids, want 2 children", len(asteroids))
	}
	for _, a := range asteroids {
		if a.Class != object.AsteroidSmall {
			t.Errorf("child class = %v, want small", a.Class)
		}
	}
}

func TestDropPickupClampsHealth(t *testing.T) {
	tun := quietTuning()
	s := newTestSession(t, tun, nil)
	s.state.Health = 90

	s.drops = append(s.drops, object.NewDrop(object.DropHealth, s.Player().Pos, 0, tun.Drops.Radius))
	evs := s.Step(frame, input.Input{})

	if got := s.State().Health; got != 100 {
		t.Errorf("health = %d, want clamped to 100", got)
	}
	if CountEvents(evs, EventPickup) != 1 || len(s.Drops()) != 0 {
		t.Errorf("events = %v, drops left = %d", evs, len(s.Drops()))
	}

	s.state.Health = 90
	s.grantPowerUp(PowerUpShield)
	if got := s.State().Health; got != 100 {
		t.Errorf("health after shield = %d, want 100", got)
	}
}

func TestPowerUpExpiry(t *testing.T) {
	tun := quietTuning()
	s := newTestSession(t, tun, nil)
	base := s.State().FireInterval

	s.grantPowerUp(PowerUpRapidFire)
	if got := s.fireInterval(); got != tun.PowerUps.RapidFireInterval {
		t.Errorf("rapid fire interval = %v, want %v", got, tun.PowerUps.RapidFireInterval)
	}
	if s.State().FireInterval != base {
		t.Error("timed power-up must not change the base fire interval")
	}

	var evs []Event
	frames := int((tun.PowerUps.Duration + 0.5) * 60)
	for i := 0; i < frames; i++ {
		evs = append(evs, s.Step(frame, input.Input{})...)
	}
	if n := CountEvents(evs, EventPowerUpExpired); n != 1 {
		t.Errorf("expiry fired %d times, want 1", n)
	}
	if s.State().PowerUp != PowerUpNone || s.fireInterval() != base {
		t.Errorf("power-up %v interval %v after expiry", s.State().PowerUp, s.fireInterval())
	}

	s.grantPowerUp(PowerUpSpeedBoost)
	if got := s.speedMultiplier(); got != tun.PowerUps.SpeedMultiplier {
		t.Errorf("speed multiplier = %v, want %v", got, tun.PowerUps.SpeedMultiplier)
	}
}

func TestListsCompactedEveryFrame(t *testing.T) {
	tun := config.DefaultTuning()
	tun.Asteroids.SpawnInterval = 0.2
	tun.Drops.HealthChance = 0.5
	s := newTestSession(t, tun, nil)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 3000 && !s.Over(); i++ {
		in := input.Input{
			Fire:  true,
			Left:  rng.Intn(3) == 0,
			Right: rng.Intn(3) == 0,
			Up:    rng.Intn(4) == 0,
		}
		s.Step(frame, in)
		if s.State().Phase == PhasePowerupChoice {
			if err := s.ChooseUpgrade(Upgrades[rng.Intn(len(Upgrades))]); err != nil {
				t.Fatal(err)
			}
		}

		for _, b := range s.Bullets() {
			if b == nil || b.Spent() {
				t.Fatalf("frame %d: spent bullet left in list", i)
			}
		}
		for _, a := range s.Asteroids() {
			if a == nil || a.Destroyed() {
				t.Fatalf("frame %d: destroyed asteroid left in list", i)
			}
			if a.Health > a.MaxHealth {
				t.Fatalf("frame %d: asteroid health %d above max %d", i, a.Health, a.MaxHealth)
			}
		}
		for _, d := range s.Drops() {
			if d == nil || d.Collected() {
				t.Fatalf("frame %d: collected drop left in list", i)
			}
		}
		if h := s.State().Health; h < 0 || h > 100 {
			t.Fatalf("frame %d: health %d outside [0, 100]", i, h)
		}
		if len(s.pending) != 0 {
			t.Fatalf("frame %d: %d spawned objects not flushed", i, len(s.pending))
		}
	}
}

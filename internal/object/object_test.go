package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/physics"
)

type spawnRecorder struct {
	spawned []Object
}

func (s *spawnRecorder) Spawn(obj Object) { s.spawned = append(s.spawned, obj) }

func testContext(sp Spawner) UpdateContext {
	return UpdateContext{
		Delta:   time.Second / 60,
		Field:   physics.NewRect(120, 80),
		Spawner: sp,
		Rand:    rand.New(rand.NewSource(1)),
	}
}

func TestZeroVelocityEntitiesStayPut(t *testing.T) {
	tun := config.DefaultTuning()
	rng := rand.New(rand.NewSource(7))
	start := physics.Vec2{X: 60, Y: 40}

	asteroid := NewAsteroid(AsteroidLarge, tun.Asteroids.Large, start, rng)
	asteroid.Vel = physics.Vec2{}
	drop := NewDrop(DropHealth, start, 0, 1)
	bullet := NewBullet(start, 0, 10, 0.5, 1)
	player := NewPlayer(start, 2.5, catalog.HullArrow)

	ctx := testContext(&spawnRecorder{})
	for frame := 0; frame < 120; frame++ {
		player.Steer(physics.Vec2{}, tun.Player.Speed, ctx.Delta.Seconds(), ctx.Field)
		for _, obj := range []Object{asteroid, drop, bullet, player} {
			if obj.Update(ctx) {
				t.Fatalf("frame %d: %T removed", frame, obj)
			}
		}
	}

	for _, c := range []Collider{asteroid, drop, bullet, player} {
		if got := c.Position(); got != start {
			t.Errorf("%T moved to %v, want %v", c, got, start)
		}
	}
}

func TestAsteroidSplit(t *testing.T) {
	tun := config.DefaultTuning()
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		class AsteroidClass
		want  []AsteroidClass
	}{
		{AsteroidLarge, []AsteroidClass{AsteroidMedium, AsteroidMedium}},
		{AsteroidMedium, []AsteroidClass{AsteroidSmall, AsteroidSmall}},
		{AsteroidSmall, nil},
		{AsteroidShard, nil},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			a := NewAsteroid(tt.class, tt.class.Stats(tun.Asteroids), physics.Vec2{X: 50, Y: 20}, rng)
			for !a.Hit(1) {
			}
			if !a.Destroyed() {
				t.Fatal("asteroid should be destroyed")
			}
			children := a.Children(tun.Asteroids, rng)
			if len(children) != len(tt.want) {
				t.Fatalf("got %d children, want %d", len(children), len(tt.want))
			}
			for i, c := range children {
				if c.Class != tt.want[i] {
					t.Errorf("child %d class = %v, want %v", i, c.Class, tt.want[i])
				}
				if c.Health != c.MaxHealth || c.Health != tt.want[i].Stats(tun.Asteroids).Health {
					t.Errorf("child %d health = %d/%d", i, c.Health, c.MaxHealth)
				}
			}
			if len(children) == 2 && children[0].Pos.X >= children[1].Pos.X {
				t.Error("children should be offset to either side")
			}
		})
	}
}

func TestAsteroidHealthBounds(t *testing.T) {
	tun := config.DefaultTuning()
	a := NewAsteroid(AsteroidLarge, tun.Asteroids.Large, physics.Vec2{X: 10, Y: 10}, rand.New(rand.NewSource(1)))

	for _, dmg := range []int{0, -5, 1, -100, 10} {
		a.Hit(dmg)
		if a.Health > a.MaxHealth || a.Health < 0 {
			t.Fatalf("after Hit(%d) health = %d, max %d", dmg, a.Health, a.MaxHealth)
		}
	}
	if a.Health != 0 {
		t.Errorf("health = %d, want 0", a.Health)
	}
}

func TestAsteroidLeavesField(t *testing.T) {
	tun := config.DefaultTuning()
	a := NewAsteroid(AsteroidSmall, tun.Asteroids.Small, physics.Vec2{X: 60, Y: 79}, rand.New(rand.NewSource(1)))
	a.Vel = physics.Vec2{Y: 600}
	if !a.Update(testContext(nil)) {
		t.Error("asteroid past the bottom edge should be removed")
	}
}

func TestBulletLifetimeAndBounds(t *testing.T) {
	ctx := testContext(nil)

	b := NewBullet(physics.Vec2{X: 60, Y: 40}, 0, 0.01, 0.5, 1)
	if !b.Update(ctx) {
		t.Error("expired bullet should be removed")
	}

	b = NewBullet(physics.Vec2{X: 60, Y: 0.5}, 70, 3, 0.5, 1)
	if !b.Update(ctx) {
		t.Error("bullet leaving the top should be removed")
	}

	b = NewBullet(physics.Vec2{X: 60, Y: 40}, 70, 3, 0.5, 1)
	b.Spend()
	if !b.Update(ctx) {
		t.Error("spent bullet should be removed")
	}
}

func TestPlayerClampedToField(t *testing.T) {
	field := physics.NewRect(120, 80)
	p := NewPlayer(physics.Vec2{X: 60, Y: 70}, 2.5, catalog.HullDelta)
	p.Steer(physics.Vec2{X: -1, Y: 1}, 40, 10, field)
	if p.Pos.X != 2.5 || p.Pos.Y != 77.5 {
		t.Errorf("player at %v, want clamped to (2.5, 77.5)", p.Pos)
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	p := NewPlayer(physics.Vec2{X: 60, Y: 70}, 2.5, catalog.HullArrow)
	const dt = 0.125
	shots := 0
	for i := 0; i < 8; i++ { // one second
		if p.TryFire(true, 0.25, dt) {
			shots++
		}
	}
	if shots != 4 {
		t.Errorf("shots in one second = %d, want 4", shots)
	}
	if p.TryFire(false, 0.25, 10) {
		t.Error("no shot without fire held")
	}
}

func TestBossFiresShards(t *testing.T) {
	tun := config.DefaultTuning()
	rec := &spawnRecorder{}
	ctx := testContext(rec)
	boss := NewBoss(tun.Boss, tun.Asteroids.Shard, ctx.Field)

	// Three shots need at most 3*61 frames; a fourth needs at least 240.
	for i := 0; i < 200; i++ {
		boss.Update(ctx)
		lane := ctx.Field.Inset(boss.Radius)
		if boss.Pos.X < lane.MinX || boss.Pos.X > lane.MaxX {
			t.Fatalf("boss left its lane: x = %v", boss.Pos.X)
		}
	}
	if len(rec.spawned) != 3 {
		t.Fatalf("spawned %d shards, want 3", len(rec.spawned))
	}
	for _, obj := range rec.spawned {
		if a, ok := obj.(*Asteroid); !ok || a.Class != AsteroidShard {
			t.Errorf("boss spawned %T, want shard asteroid", obj)
		}
	}

	if boss.Hit(tun.Boss.Health - 1) {
		t.Error("boss defeated too early")
	}
	if !boss.Hit(5) || boss.Health != 0 {
		t.Errorf("boss health = %d, want 0 and defeated", boss.Health)
	}
}

func TestAsteroidSpawnerInterval(t *testing.T) {
	tun := config.DefaultTuning()
	rec := &spawnRecorder{}
	ctx := testContext(rec)
	ctx.Delta = 500 * time.Millisecond
	s := NewAsteroidSpawner(AsteroidMedium, tun.Asteroids)

	for i := 0; i < 8; i++ { // four seconds
		s.Update(ctx)
	}
	if len(rec.spawned) != 2 {
		t.Fatalf("spawned %d asteroids, want 2", len(rec.spawned))
	}
	for _, obj := range rec.spawned {
		a := obj.(*Asteroid)
		if a.Class != AsteroidMedium || a.Pos.Y != 0 {
			t.Errorf("spawned %v at %v", a.Class, a.Pos)
		}
	}
}

func TestParticlePoolRelease(t *testing.T) {
	rec := &spawnRecorder{}
	ctx := testContext(rec)
	SpawnExplosion(ctx, physics.Vec2{X: 60, Y: 40}, 6, 20, 0.5, 0)
	if len(rec.spawned) != 6 {
		t.Fatalf("spawned %d particles, want 6", len(rec.spawned))
	}
	for _, obj := range rec.spawned {
		ReleaseObject(obj)
	}
}

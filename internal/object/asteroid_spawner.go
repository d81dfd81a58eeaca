package object

import (
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/physics"
)

// AsteroidSpawner drops a new asteroid at the top of the field every interval.
type AsteroidSpawner struct {
	class    AsteroidClass
	tuning   config.AsteroidTuning
	interval float64
	timer    float64
}

// NewAsteroidSpawner creates a spawner for the given class. The first asteroid
// appears after one full interval.
func NewAsteroidSpawner(class AsteroidClass, tuning config.AsteroidTuning) *AsteroidSpawner {
	return &AsteroidSpawner{
		class:    class,
		tuning:   tuning,
		interval: tuning.SpawnInterval,
		timer:    tuning.SpawnInterval,
	}
}

// Class returns the class of asteroid being spawned.
func (s *AsteroidSpawner) Class() AsteroidClass { return s.class }

// Update counts down and spawns at a random x on the top edge when due.
func (s *AsteroidSpawner) Update(ctx UpdateContext) bool {
	if s.interval <= 0 || ctx.Spawner == nil {
		return false
	}
	s.timer -= ctx.Delta.Seconds()
	for s.timer <= 0 {
		s.timer += s.interval
		rng := ctx.rng()
		pos := physics.Vec2{
			X: ctx.Field.MinX + rng.Float64()*ctx.Field.Width(),
			Y: ctx.Field.MinY,
		}
		ctx.Spawner.Spawn(NewAsteroid(s.class, s.class.Stats(s.tuning), pos, rng))
	}
	return false
}

// Draw is a no-op; the spawner is not visible.
func (s *AsteroidSpawner) Draw(_ DrawContext) {}

// Package object defines the simulated entities of a run: the player's ship,
// bullets, asteroids, the boss, pickups and debris particles.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
// Spawned objects join their list after the frame completes.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Field   physics.Rect
	Spawner Spawner
	Rand    *rand.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas  *draw.Canvas
	Elapsed float64 // Seconds since the run started, for animation
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by ctx.Delta. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object on ctx.Canvas.
	Draw(ctx DrawContext)
}

// Collider is an object with a circular hit area.
type Collider interface {
	Position() physics.Vec2
	HitRadius() float64
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Collides reports whether two colliders overlap.
func Collides(a, b Collider) bool {
	return physics.Overlap(a.Position(), a.HitRadius(), b.Position(), b.HitRadius())
}

// ShouldRenderBlink returns true if an object with remaining flash time
// should be rendered this frame. Always true once the timer is spent.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}

// rng returns ctx.Rand, or a freshly seeded source when none was supplied.
func (ctx UpdateContext) rng() *rand.Rand {
	if ctx.Rand != nil {
		return ctx.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// removalBounds is the field grown by margin; objects outside it are gone for good.
func removalBounds(field physics.Rect, margin float64) physics.Rect {
	return field.Inset(-margin)
}

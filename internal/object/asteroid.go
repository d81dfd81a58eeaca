package object

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// AsteroidClass is the size category of an asteroid.
type AsteroidClass int

const (
	AsteroidLarge AsteroidClass = iota
	AsteroidMedium
	AsteroidSmall
	AsteroidShard // Fired by the boss
)

func (c AsteroidClass) String() string {
	switch c {
	case AsteroidLarge:
		return "large"
	case AsteroidMedium:
		return "medium"
	case AsteroidSmall:
		return "small"
	case AsteroidShard:
		return "shard"
	default:
		return fmt.Sprintf("AsteroidClass(%d)", int(c))
	}
}

// Next returns the class an asteroid splits into. ok is false for classes that don't split.
func (c AsteroidClass) Next() (next AsteroidClass, ok bool) {
	switch c {
	case AsteroidLarge:
		return AsteroidMedium, true
	case AsteroidMedium:
		return AsteroidSmall, true
	case AsteroidSmall, AsteroidShard:
		return c, false
	default:
		return c, false
	}
}

// Stats returns the tuning of class c.
func (c AsteroidClass) Stats(t config.AsteroidTuning) config.ClassTuning {
	switch c {
	case AsteroidLarge:
		return t.Large
	case AsteroidMedium:
		return t.Medium
	case AsteroidSmall:
		return t.Small
	case AsteroidShard:
		return t.Shard
	default:
		return t.Small
	}
}

// Asteroid is a destructible rock falling down the field.
type Asteroid struct {
	Pos           physics.Vec2
	Vel           physics.Vec2
	Class         AsteroidClass
	Health        int
	MaxHealth     int
	Radius        float64
	Points        int
	Angle         float64   // Current rotation angle
	RotationSpeed float64   // Radians per second
	Vertices      []float64 // Vertex distances from center (irregular outline)
	flash         float64   // Seconds of hit flash remaining
}

// NewAsteroid creates an asteroid of the given class at pos, falling at the class speed
// with a slight sideways drift.
func NewAsteroid(class AsteroidClass, stats config.ClassTuning, pos physics.Vec2, rng *rand.Rand) *Asteroid {
	drift := (rng.Float64() - 0.5) * 0.4 * stats.Speed

	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		// Vary radius by ±25% for an irregular shape
		vertices[i] = stats.Radius * (0.75 + rng.Float64()*0.5)
	}

	return &Asteroid{
		Pos:           pos,
		Vel:           physics.Vec2{X: drift, Y: stats.Speed},
		Class:         class,
		Health:        stats.Health,
		MaxHealth:     stats.Health,
		Radius:        stats.Radius,
		Points:        stats.Points,
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 2,
		Vertices:      vertices,
	}
}

// Hit applies damage and reports whether the asteroid is destroyed.
// Non-positive damage is ignored so health never rises.
func (a *Asteroid) Hit(damage int) (destroyed bool) {
	if damage > 0 {
		a.Health = max(a.Health-damage, 0)
		a.flash = 0.15
	}
	return a.Health <= 0
}

// Destroyed reports whether the asteroid has no health left.
func (a *Asteroid) Destroyed() bool {
	return a.Health <= 0
}

// Destroy zeroes the asteroid's health, e.g. after it rammed the player.
func (a *Asteroid) Destroy() {
	a.Health = 0
}

// Children returns the two asteroids this one splits into, offset to either side.
// Classes that don't split return nil.
func (a *Asteroid) Children(t config.AsteroidTuning, rng *rand.Rand) []*Asteroid {
	next, ok := a.Class.Next()
	if !ok {
		return nil
	}
	stats := next.Stats(t)
	children := make([]*Asteroid, 0, 2)
	for _, side := range [2]float64{-1, 1} {
		pos := physics.Vec2{X: a.Pos.X + side*t.ChildOffset, Y: a.Pos.Y}
		child := NewAsteroid(next, stats, pos, rng)
		child.Vel.X = side * math.Abs(child.Vel.X)
		children = append(children, child)
	}
	return children
}

// Position implements Collider.
func (a *Asteroid) Position() physics.Vec2 { return a.Pos }

// HitRadius implements Collider.
func (a *Asteroid) HitRadius() float64 { return a.Radius }

// Update moves the asteroid down the field. X is clamped to the field; the asteroid
// is removed once destroyed or fully past the bottom edge.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	if a.Destroyed() {
		return true
	}
	dt := ctx.Delta.Seconds()

	if a.flash > 0 {
		a.flash -= dt
	}
	a.Angle += a.RotationSpeed * dt
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))

	clamped := physics.Clamp(a.Pos.X, ctx.Field.MinX, ctx.Field.MaxX)
	if clamped != a.Pos.X {
		a.Pos.X = clamped
		a.Vel.X = -a.Vel.X
	}

	return !removalBounds(ctx.Field, a.Radius).Contains(a.Pos)
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(ctx DrawContext) {
	switch {
	case a.flash > 0:
		ctx.Canvas.SetColor(draw.ColorWhite)
	case a.Class == AsteroidShard:
		ctx.Canvas.SetColor(draw.ColorMagenta)
	default:
		ctx.Canvas.SetColor(draw.ColorGray)
	}

	numVerts := len(a.Vertices)
	points := ctx.Canvas.BorrowPoints(numVerts)
	for i, dist := range a.Vertices {
		vertAngle := a.Angle + float64(i)*2*math.Pi/float64(numVerts)
		points[i] = draw.Point{
			X: a.Pos.X + math.Cos(vertAngle)*dist,
			Y: a.Pos.Y + math.Sin(vertAngle)*dist,
		}
	}
	ctx.Canvas.DrawPolygon(points, a.Class == AsteroidShard)
}

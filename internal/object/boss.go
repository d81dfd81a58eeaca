package object

import (
	"math"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// Boss guards the final level. It sways across the top of the field and
// fires shards down at the player.
type Boss struct {
	Pos       physics.Vec2
	Health    int
	MaxHealth int
	Radius    float64
	Points    int

	anchorX      float64
	sway         float64
	swayRate     float64
	clock        float64
	fireInterval float64
	fireCooldown float64
	shard        config.ClassTuning
	flash        float64
}

// NewBoss places a boss at the top centre of field.
func NewBoss(t config.BossTuning, shard config.ClassTuning, field physics.Rect) *Boss {
	c := field.Center()
	return &Boss{
		Pos:          physics.Vec2{X: c.X, Y: field.MinY + t.Y},
		Health:       t.Health,
		MaxHealth:    t.Health,
		Radius:       t.Radius,
		Points:       t.Points,
		anchorX:      c.X,
		sway:         t.Sway,
		swayRate:     t.SwayRate,
		fireInterval: t.FireInterval,
		fireCooldown: t.FireInterval,
		shard:        shard,
	}
}

// Hit applies damage and reports whether the boss is defeated.
func (b *Boss) Hit(damage int) (defeated bool) {
	if damage > 0 {
		b.Health = max(b.Health-damage, 0)
		b.flash = 0.1
	}
	return b.Health <= 0
}

// Defeated reports whether the boss has no health left.
func (b *Boss) Defeated() bool { return b.Health <= 0 }

// Position implements Collider.
func (b *Boss) Position() physics.Vec2 { return b.Pos }

// HitRadius implements Collider.
func (b *Boss) HitRadius() float64 { return b.Radius }

// Update sways the boss and spawns a shard whenever the fire cooldown elapses.
func (b *Boss) Update(ctx UpdateContext) bool {
	if b.Defeated() {
		return true
	}
	dt := ctx.Delta.Seconds()
	b.clock += dt
	if b.flash > 0 {
		b.flash -= dt
	}

	lane := ctx.Field.Inset(b.Radius)
	b.Pos.X = physics.Clamp(b.anchorX+math.Sin(b.clock*b.swayRate)*b.sway, lane.MinX, lane.MaxX)

	b.fireCooldown -= dt
	if b.fireCooldown <= 0 && ctx.Spawner != nil && b.fireInterval > 0 {
		b.fireCooldown = b.fireInterval
		rng := ctx.rng()
		pos := physics.Vec2{
			X: b.Pos.X + (rng.Float64()*2-1)*b.Radius,
			Y: b.Pos.Y + b.Radius,
		}
		ctx.Spawner.Spawn(NewAsteroid(AsteroidShard, b.shard, pos, rng))
	}
	return false
}

// Draw renders the boss as a filled octagon with a glowing core.
func (b *Boss) Draw(ctx DrawContext) {
	if b.flash > 0 {
		ctx.Canvas.SetColor(draw.ColorWhite)
	} else {
		ctx.Canvas.SetColor(draw.ColorRed)
	}
	const sides = 8
	points := ctx.Canvas.BorrowPoints(sides)
	for i := range points {
		a := float64(i)*2*math.Pi/sides + math.Pi/sides
		points[i] = draw.Point{X: b.Pos.X + math.Cos(a)*b.Radius, Y: b.Pos.Y + math.Sin(a)*b.Radius}
	}
	ctx.Canvas.DrawPolygon(points, true)

	pulse := 0.3 + 0.15*math.Sin(ctx.Elapsed*6)
	ctx.Canvas.SetColor(draw.ColorYellow)
	ctx.Canvas.DrawCircle(draw.Point{X: b.Pos.X, Y: b.Pos.Y}, b.Radius*pulse, 10)
}

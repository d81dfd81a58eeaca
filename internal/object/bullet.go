package object

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// Bullet is a shot fired by the player. It travels straight up the field.
type Bullet struct {
	Pos      physics.Vec2
	Vel      physics.Vec2
	Lifetime float64 // Seconds remaining before removal
	Damage   int
	Radius   float64
	spent    bool
}

// NewBullet creates a bullet at pos moving up at speed.
// damage is copied from the player at fire time.
func NewBullet(pos physics.Vec2, speed, lifetime, radius float64, damage int) *Bullet {
	return &Bullet{
		Pos:      pos,
		Vel:      physics.Vec2{Y: -speed},
		Lifetime: lifetime,
		Damage:   damage,
		Radius:   radius,
	}
}

// Spend marks the bullet as consumed by a hit.
func (b *Bullet) Spend() { b.spent = true }

// Spent reports whether the bullet already hit something.
func (b *Bullet) Spent() bool { return b.spent }

// Position implements Collider.
func (b *Bullet) Position() physics.Vec2 { return b.Pos }

// HitRadius implements Collider.
func (b *Bullet) HitRadius() float64 { return b.Radius }

// Update moves the bullet and checks lifetime and bounds.
func (b *Bullet) Update(ctx UpdateContext) bool {
	if b.spent {
		return true
	}
	dt := ctx.Delta.Seconds()

	b.Lifetime -= dt
	if b.Lifetime <= 0 {
		return true
	}

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	return !ctx.Field.Contains(b.Pos)
}

// Draw renders the bullet as a short vertical streak.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.SetColor(draw.ColorYellow)
	ctx.Canvas.DrawLine(
		draw.Point{X: b.Pos.X, Y: b.Pos.Y},
		draw.Point{X: b.Pos.X, Y: b.Pos.Y + 1.5},
	)
}

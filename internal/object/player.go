package object

import (
	"github.com/tomz197/starfall/internal/catalog"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// Player is the ship controlled by the user. It moves freely inside the field.
type Player struct {
	Pos    physics.Vec2
	Radius float64
	Hull   catalog.Hull

	fireCooldown float64
	flash        float64 // Seconds of damage blink remaining
	moving       bool
}

// NewPlayer creates a ship at pos.
func NewPlayer(pos physics.Vec2, radius float64, hull catalog.Hull) *Player {
	return &Player{Pos: pos, Radius: radius, Hull: hull}
}

// Steer moves the ship along dir (each component in -1..1) at speed units per
// second and keeps it inside field. A zero dir leaves the ship where it is.
func (p *Player) Steer(dir physics.Vec2, speed, dt float64, field physics.Rect) {
	p.moving = dir != (physics.Vec2{})
	if !p.moving {
		return
	}
	p.Pos = field.Inset(p.Radius).Clamp(p.Pos.Add(dir.Scale(speed * dt)))
}

// TryFire advances the fire cooldown by dt and reports whether a shot leaves
// the ship this frame.
func (p *Player) TryFire(fire bool, interval, dt float64) bool {
	p.fireCooldown -= dt
	if !fire || p.fireCooldown > 0 {
		return false
	}
	p.fireCooldown = interval
	return true
}

// Muzzle is where bullets leave the ship.
func (p *Player) Muzzle() physics.Vec2 {
	return physics.Vec2{X: p.Pos.X, Y: p.Pos.Y - p.Radius}
}

// Flash starts the damage blink.
func (p *Player) Flash() { p.flash = 0.6 }

// Position implements Collider.
func (p *Player) Position() physics.Vec2 { return p.Pos }

// HitRadius implements Collider.
func (p *Player) HitRadius() float64 { return p.Radius }

// Update counts down the damage blink and trails exhaust while moving.
// The player is never removed by the entity updater.
func (p *Player) Update(ctx UpdateContext) bool {
	if p.flash > 0 {
		p.flash -= ctx.Delta.Seconds()
	}
	if p.moving {
		SpawnExhaust(ctx, physics.Vec2{X: p.Pos.X, Y: p.Pos.Y + p.Radius})
	}
	return false
}

// hullShapes are outlines in units of the ship radius, nose pointing up.
var hullShapes = map[catalog.Hull][]draw.Point{
	catalog.HullArrow: {
		{X: 0, Y: -1}, {X: 0.35, Y: 0.2}, {X: 0.9, Y: 0.8},
		{X: 0, Y: 0.5}, {X: -0.9, Y: 0.8}, {X: -0.35, Y: 0.2},
	},
	catalog.HullDelta: {
		{X: 0, Y: -1}, {X: 1, Y: 0.9}, {X: 0, Y: 0.6}, {X: -1, Y: 0.9},
	},
	catalog.HullWing: {
		{X: 0, Y: -0.6}, {X: 1.1, Y: 0.4}, {X: 0.5, Y: 0.7},
		{X: 0, Y: 0.4}, {X: -0.5, Y: 0.7}, {X: -1.1, Y: 0.4},
	},
}

// Draw renders the hull as a filled polygon, blinking after damage.
func (p *Player) Draw(ctx DrawContext) {
	if !ShouldRenderBlink(p.flash, 10) {
		return
	}
	shape, ok := hullShapes[p.Hull]
	if !ok {
		shape = hullShapes[catalog.HullArrow]
	}
	points := ctx.Canvas.BorrowPoints(len(shape))
	for i, v := range shape {
		points[i] = draw.Point{X: p.Pos.X + v.X*p.Radius, Y: p.Pos.Y + v.Y*p.Radius}
	}
	ctx.Canvas.SetColor(draw.ColorCyan)
	ctx.Canvas.DrawPolygon(points, true)
}

package object

import (
	"fmt"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// DropKind tells what a pickup grants.
type DropKind int

const (
	DropHealth  DropKind = iota // Restores health
	DropPowerUp                 // Grants a random timed power-up
)

func (k DropKind) String() string {
	switch k {
	case DropHealth:
		return "health"
	case DropPowerUp:
		return "power-up"
	default:
		return fmt.Sprintf("DropKind(%d)", int(k))
	}
}

// Drop is a pickup left behind by a destroyed asteroid. It drifts down the field.
type Drop struct {
	Pos       physics.Vec2
	Vel       physics.Vec2
	Kind      DropKind
	Radius    float64
	collected bool
}

// NewDrop creates a drop at pos drifting down at speed.
func NewDrop(kind DropKind, pos physics.Vec2, speed, radius float64) *Drop {
	return &Drop{
		Pos:    pos,
		Vel:    physics.Vec2{Y: speed},
		Kind:   kind,
		Radius: radius,
	}
}

// Collect marks the drop as picked up.
func (d *Drop) Collect() { d.collected = true }

// Collected reports whether the drop was picked up.
func (d *Drop) Collected() bool { return d.collected }

// Position implements Collider.
func (d *Drop) Position() physics.Vec2 { return d.Pos }

// HitRadius implements Collider.
func (d *Drop) HitRadius() float64 { return d.Radius }

// Update drifts the drop, clamping X to the field.
func (d *Drop) Update(ctx UpdateContext) bool {
	if d.collected {
		return true
	}
	d.Pos = d.Pos.Add(d.Vel.Scale(ctx.Delta.Seconds()))
	d.Pos.X = physics.Clamp(d.Pos.X, ctx.Field.MinX, ctx.Field.MaxX)
	return !removalBounds(ctx.Field, d.Radius).Contains(d.Pos)
}

// Draw renders a green cross for health and a blinking magenta diamond for power-ups.
func (d *Drop) Draw(ctx DrawContext) {
	r := d.Radius
	p := draw.Point{X: d.Pos.X, Y: d.Pos.Y}
	switch d.Kind {
	case DropHealth:
		ctx.Canvas.SetColor(draw.ColorGreen)
		ctx.Canvas.DrawLine(draw.Point{X: p.X - r, Y: p.Y}, draw.Point{X: p.X + r, Y: p.Y})
		ctx.Canvas.DrawLine(draw.Point{X: p.X, Y: p.Y - r}, draw.Point{X: p.X, Y: p.Y + r})
	case DropPowerUp:
		if !ShouldRenderBlink(ctx.Elapsed, 4) {
			ctx.Canvas.SetColor(draw.ColorCyan)
		} else {
			ctx.Canvas.SetColor(draw.ColorMagenta)
		}
		ctx.Canvas.DrawPolygon([]draw.Point{
			{X: p.X, Y: p.Y - r},
			{X: p.X + r, Y: p.Y},
			{X: p.X, Y: p.Y + r},
			{X: p.X - r, Y: p.Y},
		}, true)
	}
}

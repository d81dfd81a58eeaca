package object

import (
	"math"
	"sync"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// particlePool reuses Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived debris or exhaust pixel.
type Particle struct {
	Pos         physics.Vec2
	Vel         physics.Vec2
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
	Color       draw.Color
}

// NewParticle takes a particle from the pool.
func NewParticle(pos, vel physics.Vec2, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Pos:         pos,
		Vel:         vel,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
		Color:       color,
	}
	return p
}

// Release returns the particle to the pool. Call it once the particle is removed.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion emits count particles in a circular burst around pos.
func SpawnExplosion(ctx UpdateContext, pos physics.Vec2, count int, speed, lifetime float64, color draw.Color) {
	if ctx.Spawner == nil {
		return
	}
	rng := ctx.rng()
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		vel := physics.Vec2{X: math.Cos(angle) * spd, Y: math.Sin(angle) * spd}
		ctx.Spawner.Spawn(NewParticle(pos, vel, life, color))
	}
}

// SpawnExhaust emits one or two particles trailing below pos.
func SpawnExhaust(ctx UpdateContext, pos physics.Vec2) {
	if ctx.Spawner == nil {
		return
	}
	rng := ctx.rng()
	count := 1 + rng.Intn(2)
	for i := 0; i < count; i++ {
		vel := physics.Vec2{
			X: (rng.Float64() - 0.5) * 6,
			Y: 10 + rng.Float64()*6,
		}
		p := NewParticle(pos, vel, 0.1+rng.Float64()*0.15, draw.ColorYellow)
		p.Drag = 0.85
		ctx.Spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60)
	p.Vel = p.Vel.Scale(dragFactor)
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	return !ctx.Field.Contains(p.Pos)
}

// Draw renders the particle as a single pixel, skipping it once mostly faded.
func (p *Particle) Draw(ctx DrawContext) {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return
	}
	ctx.Canvas.SetColor(p.Color)
	ctx.Canvas.SetFloat(p.Pos.X, p.Pos.Y)
}

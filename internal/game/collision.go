package game

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

// checkCollisions tests every bullet against every asteroid and the boss, then
// the player against every asteroid and drop. Processing stops once the run ends.
func (s *Session) checkCollisions(ctx object.UpdateContext) {
	s.checkBulletHits(ctx)
	if s.Over() {
		return
	}
	s.checkPlayerHits(ctx)
	if s.Over() {
		return
	}
	s.checkPickups()
}

func (s *Session) checkBulletHits(ctx object.UpdateContext) {
	for _, b := range s.bullets {
		if b.Spent() {
			continue
		}
		for _, a := range s.asteroids {
			if a.Destroyed() || !object.Collides(b, a) {
				continue
			}
			b.Spend()
			s.emit(Event{Kind: EventAsteroidHit, Pos: a.Pos, Class: a.Class})
			if a.Hit(b.Damage) {
				s.destroyAsteroid(ctx, a)
			}
			break
		}
		if b.Spent() || s.boss == nil || s.boss.Defeated() || !object.Collides(b, s.boss) {
			continue
		}
		b.Spend()
		s.emit(Event{Kind: EventBossHit, Pos: s.boss.Pos})
		if s.boss.Hit(b.Damage) {
			s.defeatBoss(ctx)
			return
		}
	}
}

func (s *Session) destroyAsteroid(ctx object.UpdateContext, a *object.Asteroid) {
	s.state.Score += a.Points
	s.emit(Event{Kind: EventAsteroidDestroyed, Pos: a.Pos, Class: a.Class, Points: a.Points})
	object.SpawnExplosion(ctx, a.Pos, 4+int(a.Radius)*2, 20, 0.5, draw.ColorGray)

	for _, child := range a.Children(s.tuning.Asteroids, s.rng) {
		s.Spawn(child)
	}
	s.rollDrop(a)
}

// rollDrop leaves a health drop or, failing that, a power-up drop where a was destroyed.
func (s *Session) rollDrop(a *object.Asteroid) {
	t := s.tuning
	switch {
	case s.rng.Float64() < t.Drops.HealthChance:
		s.Spawn(object.NewDrop(object.DropHealth, a.Pos, t.Drops.Speed, t.Drops.Radius))
	case s.rng.Float64() < t.PowerUps.DropChance:
		s.Spawn(object.NewDrop(object.DropPowerUp, a.Pos, t.Drops.Speed, t.Drops.Radius))
	}
}

func (s *Session) defeatBoss(ctx object.UpdateContext) {
	boss := s.boss
	s.state.Score += boss.Points
	s.emit(Event{Kind: EventBossDefeated, Pos: boss.Pos, Points: boss.Points})
	object.SpawnExplosion(ctx, boss.Pos, 40, 30, 1.2, draw.ColorRed)
	s.endRun(true)
}

func (s *Session) checkPlayerHits(ctx object.UpdateContext) {
	for _, a := range s.asteroids {
		if a.Destroyed() || !object.Collides(s.player, a) {
			continue
		}
		a.Destroy()
		object.SpawnExplosion(ctx, a.Pos, 8, 15, 0.4, draw.ColorRed)
		s.damagePlayer(s.tuning.Asteroids.CollisionDamage)
		if s.Over() {
			return
		}
	}
}

func (s *Session) damagePlayer(amount int) {
	s.setHealth(s.state.Health - amount)
	s.player.Flash()
	s.emit(Event{Kind: EventPlayerHit, Pos: s.player.Pos})
	if s.state.Health == 0 {
		s.endRun(false)
	}
}

func (s *Session) checkPickups() {
	for _, d := range s.drops {
		if d.Collected() || !object.Collides(s.player, d) {
			continue
		}
		d.Collect()
		ev := Event{Kind: EventPickup, Pos: d.Pos, Drop: d.Kind}
		switch d.Kind {
		case object.DropHealth:
			s.setHealth(s.state.Health + s.tuning.Drops.HealthAmount)
		case object.DropPowerUp:
			ev.PowerUp = s.grantPowerUp(timedPowerUps[s.rng.Intn(len(timedPowerUps))])
		}
		s.emit(ev)
	}
}

// setHealth stores h clamped to [0, MaxHealth].
func (s *Session) setHealth(h int) {
	s.state.Health = min(max(h, 0), s.state.MaxHealth)
}

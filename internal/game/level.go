package game

import (
	"fmt"

	"github.com/tomz197/starfall/internal/object"
)

// classForLevel picks the asteroid class spawned during a level.
func classForLevel(level int) object.AsteroidClass {
	switch {
	case level <= 2:
		return object.AsteroidLarge
	case level <= 4:
		return object.AsteroidMedium
	default:
		return object.AsteroidSmall
	}
}

// startLevel clears asteroids and drops and begins level n. The final level
// has no countdown: it spawns the boss and enters the boss fight.
func (s *Session) startLevel(n int) {
	s.asteroids = clearList(s.asteroids)
	s.drops = clearList(s.drops)

	s.state.Level = n
	s.spawner = object.NewAsteroidSpawner(classForLevel(n), s.tuning.Asteroids)
	s.emit(Event{Kind: EventLevelStarted, Level: n})

	if n >= s.state.Levels {
		s.state.Phase = PhaseBossFight
		s.state.TimeLeft = 0
		s.boss = object.NewBoss(s.tuning.Boss, s.tuning.Asteroids.Shard, s.field)
		s.emit(Event{Kind: EventBossSpawned, Level: n, Pos: s.boss.Pos})
		s.logger.Debug("boss spawned", "level", n)
		return
	}
	s.state.Phase = PhaseLevelRunning
	s.state.TimeLeft = s.tuning.Levels.Duration
	s.logger.Debug("level started", "level", n)
}

// tickLevelTimer counts down a timed level and opens the upgrade choice at zero.
func (s *Session) tickLevelTimer(sec float64) {
	s.state.TimeLeft -= sec
	if s.state.TimeLeft > 0 {
		return
	}
	s.state.TimeLeft = 0
	s.emit(Event{Kind: EventLevelComplete, Level: s.state.Level})
	s.state.Phase = PhasePowerupChoice
	s.asteroids = clearList(s.asteroids)
	s.bullets = clearList(s.bullets)
}

func (s *Session) applyUpgrade(u Upgrade) error {
	t := s.tuning
	switch u {
	case UpgradeAttackSpeed:
		s.state.FireInterval = max(s.state.FireInterval*t.Upgrades.AttackSpeedMultiplier, t.Player.MinFireInterval)
	case UpgradeAttackDamage:
		s.state.Damage += t.Upgrades.DamageIncrement
	case UpgradeHealthBoost:
		s.setHealth(s.state.Health + t.Upgrades.HealthBoost)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownUpgrade, int(u))
	}
	s.logger.Debug("upgrade chosen", "upgrade", u, "level", s.state.Level)
	return nil
}

// clearList empties list, releasing pooled members, and keeps its capacity.
func clearList[T object.Object](list []T) []T {
	return compact(list, func(T) bool { return true })
}

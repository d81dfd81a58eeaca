package game

// grantPowerUp activates p for the configured duration, replacing any active
// power-up. Shield also restores health at once.
func (s *Session) grantPowerUp(p PowerUp) PowerUp {
	t := s.tuning.PowerUps
	s.state.PowerUp = p
	s.state.PowerUpExpiry = s.state.Elapsed + t.Duration
	if p == PowerUpShield {
		s.setHealth(s.state.Health + t.ShieldHealth)
	}
	s.logger.Debug("power-up granted", "power_up", p)
	return p
}

// advanceClock moves the run clock forward and expires the active power-up.
func (s *Session) advanceClock(sec float64) {
	s.state.Elapsed += sec
	if s.state.PowerUp == PowerUpNone || s.state.Elapsed < s.state.PowerUpExpiry {
		return
	}
	s.emit(Event{Kind: EventPowerUpExpired, PowerUp: s.state.PowerUp})
	s.state.PowerUp = PowerUpNone
	s.state.PowerUpExpiry = 0
}

// fireInterval is the current delay between shots. Rapid fire caps it without
// touching the upgraded base value.
func (s *Session) fireInterval() float64 {
	if s.state.PowerUp == PowerUpRapidFire {
		return min(s.state.FireInterval, s.tuning.PowerUps.RapidFireInterval)
	}
	return s.state.FireInterval
}

func (s *Session) speedMultiplier() float64 {
	if s.state.PowerUp == PowerUpSpeedBoost {
		return s.tuning.PowerUps.SpeedMultiplier
	}
	return 1
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay parameter of the shooter.
// Distances are field units, speeds are units per second and times are seconds.
type Tuning struct {
	FieldWidth  float64 `yaml:"fieldWidth"`
	FieldHeight float64 `yaml:"fieldHeight"`

	Player    PlayerTuning   `yaml:"player"`
	Bullet    BulletTuning   `yaml:"bullet"`
	Asteroids AsteroidTuning `yaml:"asteroids"`
	Levels    LevelTuning    `yaml:"levels"`
	Boss      BossTuning     `yaml:"boss"`
	PowerUps  PowerUpTuning  `yaml:"powerUps"`
	Drops     DropTuning     `yaml:"drops"`
	Upgrades  UpgradeTuning  `yaml:"upgrades"`
}

// PlayerTuning configures the player's ship.
type PlayerTuning struct {
	Speed           float64 `yaml:"speed"`
	Radius          float64 `yaml:"radius"`
	FireInterval    float64 `yaml:"fireInterval"`
	MinFireInterval float64 `yaml:"minFireInterval"`
	Damage          int     `yaml:"damage"`
	MaxHealth       int     `yaml:"maxHealth"`
}

// BulletTuning configures player bullets.
type BulletTuning struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
}

// ClassTuning holds the stats of one asteroid class.
type ClassTuning struct {
	Health int     `yaml:"health"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Points int     `yaml:"points"`
}

// AsteroidTuning configures asteroid classes, spawning and impact damage.
type AsteroidTuning struct {
	Large           ClassTuning `yaml:"large"`
	Medium          ClassTuning `yaml:"medium"`
	Small           ClassTuning `yaml:"small"`
	Shard           ClassTuning `yaml:"shard"`
	SpawnInterval   float64     `yaml:"spawnInterval"`
	ChildOffset     float64     `yaml:"childOffset"`
	CollisionDamage int         `yaml:"collisionDamage"`
}

// LevelTuning configures the level sequence.
type LevelTuning struct {
	Count    int     `yaml:"count"`
	Duration float64 `yaml:"duration"`
}

// BossTuning configures the final-level boss.
type BossTuning struct {
	Health       int     `yaml:"health"`
	Radius       float64 `yaml:"radius"`
	Y            float64 `yaml:"y"`
	Sway         float64 `yaml:"sway"`
	SwayRate     float64 `yaml:"swayRate"`
	FireInterval float64 `yaml:"fireInterval"`
	Points       int     `yaml:"points"`
}

// PowerUpTuning configures the random timed power-ups.
type PowerUpTuning struct {
	Duration          float64 `yaml:"duration"`
	DropChance        float64 `yaml:"dropChance"`
	RapidFireInterval float64 `yaml:"rapidFireInterval"`
	ShieldHealth      int     `yaml:"shieldHealth"`
	SpeedMultiplier   float64 `yaml:"speedMultiplier"`
}

// DropTuning configures health and power-up drops.
type DropTuning struct {
	HealthChance float64 `yaml:"healthChance"`
	HealthAmount int     `yaml:"healthAmount"`
	Speed        float64 `yaml:"speed"`
	Radius       float64 `yaml:"radius"`
}

// UpgradeTuning configures the permanent end-of-level upgrades.
type UpgradeTuning struct {
	AttackSpeedMultiplier float64 `yaml:"attackSpeedMultiplier"`
	DamageIncrement       int     `yaml:"damageIncrement"`
	HealthBoost           int     `yaml:"healthBoost"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:  120,
		FieldHeight: 80,
		Player: PlayerTuning{
			Speed:           40,
			Radius:          2.5,
			FireInterval:    0.2,
			MinFireInterval: 0.05,
			Damage:          1,
			MaxHealth:       100,
		},
		Bullet: BulletTuning{
			Speed:    70,
			Lifetime: 3,
			Radius:   0.6,
		},
		Asteroids: AsteroidTuning{
			Large:           ClassTuning{Health: 3, Radius: 5, Speed: 8, Points: 30},
			Medium:          ClassTuning{Health: 2, Radius: 3.5, Speed: 12, Points: 20},
			Small:           ClassTuning{Health: 1, Radius: 2, Speed: 16, Points: 10},
			Shard:           ClassTuning{Health: 1, Radius: 2, Speed: 15, Points: 50},
			SpawnInterval:   2,
			ChildOffset:     3,
			CollisionDamage: 20,
		},
		Levels: LevelTuning{
			Count:    5,
			Duration: 30,
		},
		Boss: BossTuning{
			Health:       50,
			Radius:       8,
			Y:            14,
			Sway:         24,
			SwayRate:     0.5,
			FireInterval: 1,
			Points:       1000,
		},
		PowerUps: PowerUpTuning{
			Duration:          10,
			DropChance:        0.03,
			RapidFireInterval: 0.1,
			ShieldHealth:      50,
			SpeedMultiplier:   1.5,
		},
		Drops: DropTuning{
			HealthChance: 0.05,
			HealthAmount: 20,
			Speed:        3,
			Radius:       1.5,
		},
		Upgrades: UpgradeTuning{
			AttackSpeedMultiplier: 0.8,
			DamageIncrement:       1,
			HealthBoost:           30,
		},
	}
}

// LoadTuning reads a YAML file and overlays it on DefaultTuning.
// Keys missing from the file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes a YAML document over the defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// Validate checks that the parameters describe a playable game.
func (t Tuning) Validate() error {
	if t.FieldWidth <= 0 || t.FieldHeight <= 0 {
		return fmt.Errorf("field must be positive, got %vx%v", t.FieldWidth, t.FieldHeight)
	}
	if t.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be > 0, got %d", t.Player.MaxHealth)
	}
	if t.Player.FireInterval <= 0 || t.Player.MinFireInterval <= 0 {
		return errors.New("player fire intervals must be > 0")
	}
	if t.Player.MinFireInterval > t.Player.FireInterval {
		return fmt.Errorf("player.minFireInterval %v exceeds fireInterval %v",
			t.Player.MinFireInterval, t.Player.FireInterval)
	}
	if t.Player.Damage < 1 {
		return fmt.Errorf("player.damage must be >= 1, got %d", t.Player.Damage)
	}
	if t.Bullet.Speed <= 0 || t.Bullet.Lifetime <= 0 {
		return errors.New("bullet speed and lifetime must be > 0")
	}
	for name, c := range map[string]ClassTuning{
		"large":  t.Asteroids.Large,
		"medium": t.Asteroids.Medium,
		"small":  t.Asteroids.Small,
		"shard":  t.Asteroids.Shard,
	} {
		if c.Health < 1 || c.Radius <= 0 {
			return fmt.Errorf("asteroids.%s needs health >= 1 and radius > 0", name)
		}
	}
	if t.Asteroids.SpawnInterval <= 0 {
		return fmt.Errorf("asteroids.spawnInterval must be > 0, got %v", t.Asteroids.SpawnInterval)
	}
	if t.Levels.Count < 1 {
		return fmt.Errorf("levels.count must be >= 1, got %d", t.Levels.Count)
	}
	if t.Levels.Duration <= 0 {
		return fmt.Errorf("levels.duration must be > 0, got %v", t.Levels.Duration)
	}
	if t.Boss.Health < 1 || t.Boss.FireInterval <= 0 {
		return errors.New("boss health must be >= 1 and fireInterval > 0")
	}
	for name, p := range map[string]float64{
		"drops.healthChance":  t.Drops.HealthChance,
		"powerUps.dropChance": t.PowerUps.DropChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	if t.Upgrades.AttackSpeedMultiplier <= 0 || t.Upgrades.AttackSpeedMultiplier > 1 {
		return fmt.Errorf("upgrades.attackSpeedMultiplier must be within (0, 1], got %v",
			t.Upgrades.AttackSpeedMultiplier)
	}
	return nil
}

package game

import "fmt"

// Phase is the level state machine's current state.
type Phase int

const (
	PhaseLevelRunning Phase = iota
	PhasePowerupChoice
	PhaseBossFight
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLevelRunning:
		return "level running"
	case PhasePowerupChoice:
		return "power-up choice"
	case PhaseBossFight:
		return "boss fight"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PowerUp is a temporary effect granted by a power-up drop.
type PowerUp int

const (
	PowerUpNone PowerUp = iota
	PowerUpRapidFire
	PowerUpShield
	PowerUpSpeedBoost
)

// timedPowerUps are the effects a power-up drop can grant.
var timedPowerUps = [...]PowerUp{PowerUpRapidFire, PowerUpShield, PowerUpSpeedBoost}

func (p PowerUp) String() string {
	switch p {
	case PowerUpNone:
		return "none"
	case PowerUpRapidFire:
		return "Rapid Fire"
	case PowerUpShield:
		return "Shield"
	case PowerUpSpeedBoost:
		return "Speed Boost"
	default:
		return fmt.Sprintf("PowerUp(%d)", int(p))
	}
}

// Upgrade is a permanent stat modifier chosen between levels.
type Upgrade int

const (
	UpgradeAttackSpeed Upgrade = iota
	UpgradeAttackDamage
	UpgradeHealthBoost
)

// Upgrades lists the choices offered after each non-final level, in menu order.
var Upgrades = []Upgrade{UpgradeAttackSpeed, UpgradeAttackDamage, UpgradeHealthBoost}

func (u Upgrade) String() string {
	switch u {
	case UpgradeAttackSpeed:
		return "Attack Speed"
	case UpgradeAttackDamage:
		return "Attack Damage"
	case UpgradeHealthBoost:
		return "Health Boost"
	default:
		return fmt.Sprintf("Upgrade(%d)", int(u))
	}
}

// Description is the one-line effect shown in the upgrade menu.
func (u Upgrade) Description() string {
	switch u {
	case UpgradeAttackSpeed:
		return "Fire 20% faster"
	case UpgradeAttackDamage:
		return "+1 damage per shot"
	case UpgradeHealthBoost:
		return "Restore 30 health"
	default:
		return ""
	}
}

package game

import (
	"fmt"

	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventShot EventKind = iota
	EventAsteroidHit
	EventAsteroidDestroyed
	EventPlayerHit
	EventPickup
	EventPowerUpExpired
	EventLevelStarted
	EventLevelComplete
	EventBossSpawned
	EventBossHit
	EventBossDefeated
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventAsteroidHit:
		return "asteroid hit"
	case EventAsteroidDestroyed:
		return "asteroid destroyed"
	case EventPlayerHit:
		return "player hit"
	case EventPickup:
		return "pickup"
	case EventPowerUpExpired:
		return "power-up expired"
	case EventLevelStarted:
		return "level started"
	case EventLevelComplete:
		return "level complete"
	case EventBossSpawned:
		return "boss spawned"
	case EventBossHit:
		return "boss hit"
	case EventBossDefeated:
		return "boss defeated"
	case EventGameOver:
		return "game over"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is emitted by Session.Step for the renderer and the sound system.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Pos     physics.Vec2
	Points  int
	Class   object.AsteroidClass
	Drop    object.DropKind
	PowerUp PowerUp
	Level   int
	Won     bool
}

// CountEvents returns how many events of kind k are in evs.
func CountEvents(evs []Event, k EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

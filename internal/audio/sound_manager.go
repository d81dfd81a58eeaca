package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starfall/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays effects through the local speaker. Every method is a
// no-op until Initialize succeeds, so a machine without audio plays silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates a sound manager at the given master volume (0..1).
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops all sounds and releases the device.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play starts sound s on top of whatever is playing.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	st := Create(s, sampleRate, sm.volume)
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

// HandleEvents plays the cue of every event that has one.
func (sm *SoundManager) HandleEvents(evs []game.Event) {
	for _, ev := range evs {
		if s, ok := SoundFor(ev); ok {
			sm.Play(s)
		}
	}
}

// SoundFor maps a session event to its cue.
func SoundFor(ev game.Event) (Sound, bool) {
	switch ev.Kind {
	case game.EventShot:
		return SoundShot, true
	case game.EventAsteroidDestroyed, game.EventBossDefeated:
		return SoundExplosion, true
	case game.EventPlayerHit:
		return SoundHit, true
	case game.EventPickup:
		return SoundPickup, true
	case game.EventLevelStarted:
		return SoundLevel, true
	case game.EventBossSpawned:
		return SoundBoss, true
	case game.EventGameOver:
		if ev.Won {
			return SoundVictory, true
		}
		return SoundGameOver, true
	case game.EventAsteroidHit, game.EventBossHit, game.EventPowerUpExpired, game.EventLevelComplete:
		return 0, false
	default:
		return 0, false
	}
}

package highscore

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

const (
	storageObject   = "highscores"
	storageProperty = "spaceShooterHighScores"
)

// Backend stores the serialized board.
type Backend interface {
	// Load returns the stored payload. ok is false when nothing was saved yet.
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// GdataBackend persists the board in the user's data directory through gdata.
type GdataBackend struct {
	m *gdata.Manager
}

// OpenGdata opens (creating if needed) the data directory of appName.
func OpenGdata(appName string) (*GdataBackend, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir for %s: %w", appName, err)
	}
	return &GdataBackend{m: m}, nil
}

// Load implements Backend.
func (g *GdataBackend) Load() ([]byte, bool, error) {
	if !g.m.ObjectPropExists(storageObject, storageProperty) {
		return nil, false, nil
	}
	data, err := g.m.LoadObjectProp(storageObject, storageProperty)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load high scores: %w", err)
	}
	return data, true, nil
}

// Save implements Backend.
func (g *GdataBackend) Save(data []byte) error {
	if err := g.m.SaveObjectProp(storageObject, storageProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// MemoryBackend keeps the payload in memory. Used when no data dir is available.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// Load implements Backend.
func (m *MemoryBackend) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

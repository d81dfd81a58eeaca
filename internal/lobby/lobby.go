// Package lobby tracks the players connected to a shared arcade process.
// Each connection runs its own game session; the lobby only carries
// presence and process-wide notices such as a pending shutdown.
package lobby

import (
	"sync"
	"time"
)

// NoticeType identifies a lobby notice.
type NoticeType int

const (
	NoticeShutdown NoticeType = iota // The process is going down
	NoticeHighScore                  // Another player entered the score board
)

// Notice is a message delivered to a connected client.
type Notice struct {
	Type     NoticeType
	Username string // Player that caused the notice, if any
	Score    int
	Rank     int
}

// Handle represents one client's membership in the lobby.
type Handle struct {
	ID       int
	Username string
	Notices  chan Notice
}

// Lobby is a registry of connected clients. Safe for concurrent use.
type Lobby struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
}

// New creates an empty lobby.
func New() *Lobby {
	return &Lobby{
		clients: make(map[int]*Handle),
		nextID:  1,
	}
}

// Register adds a client and returns its handle.
func (l *Lobby) Register(username string) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := &Handle{
		ID:       l.nextID,
		Username: username,
		Notices:  make(chan Notice, 16),
	}
	l.nextID++
	l.clients[h.ID] = h
	return h
}

// Unregister removes a client. Unknown IDs are ignored.
func (l *Lobby) Unregister(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, id)
}

// Count returns the number of connected clients.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Broadcast delivers n to every client except the one with ID skip.
// Clients with a full queue miss the notice rather than block the sender.
func (l *Lobby) Broadcast(n Notice, skip int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, h := range l.clients {
		if id == skip {
			continue
		}
		select {
		case h.Notices <- n:
		default:
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// or for the timeout to elapse.
func (l *Lobby) Shutdown(timeout time.Duration) {
	l.Broadcast(Notice{Type: NoticeShutdown}, 0)

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if l.Count() == 0 {
				return
			}
		}
	}
}

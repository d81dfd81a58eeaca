package highscore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Store is a Board shared by many sessions and saved after every change.
type Store struct {
	mu      sync.Mutex
	board   Board
	backend Backend
	logger  *log.Logger
}

// NewStore loads the board from backend. An unreadable or corrupt payload is
// logged and replaced by an empty board.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{backend: backend, logger: logger}

	data, ok, err := backend.Load()
	switch {
	case err != nil:
		logger.Warn("high scores unavailable, starting empty", "err", err)
	case ok:
		if err := json.Unmarshal(data, &s.board); err != nil {
			logger.Warn("high scores corrupt, starting empty", "err", err)
			s.board = Board{}
		}
	}
	return s
}

// Entries returns the current board, best first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Entries()
}

// Qualifies reports whether score would make the board.
func (s *Store) Qualifies(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Qualifies(score)
}

// Record inserts a score and saves the board. It returns the 0-based rank, or
// -1 when the score didn't qualify (nothing is saved then).
func (s *Store) Record(score int, country string, when time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rank := s.board.Insert(Entry{
		Score:   score,
		Date:    when.Format(DateLayout),
		Country: country,
	})
	if rank < 0 {
		return rank, nil
	}

	data, err := json.Marshal(&s.board)
	if err != nil {
		return rank, fmt.Errorf("failed to encode high scores: %w", err)
	}
	if err := s.backend.Save(data); err != nil {
		return rank, err
	}
	s.logger.Debug("high score recorded", "score", score, "rank", rank+1, "country", country)
	return rank, nil
}

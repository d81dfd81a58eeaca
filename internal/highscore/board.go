// Package highscore keeps the top scores, sorted descending and capped,
// and persists them through a pluggable backend.
package highscore

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MaxEntries is the number of scores kept on the board.
const MaxEntries = 10

// DateLayout formats Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one finished run.
type Entry struct {
	Score   int    `json:"score"`
	Date    string `json:"date"`
	Country string `json:"country"`
}

// Board is a descending list of at most MaxEntries entries.
type Board struct {
	entries []Entry
}

// Insert adds e and returns its 0-based rank, or -1 if it didn't make the board.
// Equal scores keep their arrival order.
func (b *Board) Insert(e Entry) int {
	rank := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].Score < e.Score
	})
	if rank >= MaxEntries {
		return -1
	}
	b.entries = append(b.entries, Entry{})
	copy(b.entries[rank+1:], b.entries[rank:])
	b.entries[rank] = e
	if len(b.entries) > MaxEntries {
		b.entries = b.entries[:MaxEntries]
	}
	return rank
}

// Qualifies reports whether score would make the board.
func (b *Board) Qualifies(score int) bool {
	return len(b.entries) < MaxEntries || score > b.entries[len(b.entries)-1].Score
}

// Entries returns a copy of the board, best first.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries.
func (b *Board) Len() int { return len(b.entries) }

// MarshalJSON encodes the board as a plain JSON array.
func (b *Board) MarshalJSON() ([]byte, error) {
	if b.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.entries)
}

// UnmarshalJSON decodes a JSON array of entries in any order, re-sorting and
// trimming it so the board invariants hold.
func (b *Board) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode high scores: %w", err)
	}
	b.entries = nil
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for _, e := range entries {
		b.Insert(e)
	}
	return nil
}

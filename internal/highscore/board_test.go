package highscore

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"
)

func TestBoardInvariantsAfterEveryInsert(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var b Board
	for i := 0; i < 200; i++ {
		b.Insert(Entry{Score: rng.Intn(500), Country: "FR"})

		entries := b.Entries()
		if len(entries) > MaxEntries {
			t.Fatalf("insert %d: %d entries, max %d", i, len(entries), MaxEntries)
		}
		if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score }) {
			t.Fatalf("insert %d: board not descending: %v", i, entries)
		}
	}
	if b.Len() != MaxEntries {
		t.Errorf("len = %d, want %d", b.Len(), MaxEntries)
	}
}

func TestBoardInsertRank(t *testing.T) {
	var b Board
	for _, s := range []int{50, 40, 30, 20, 10, 9, 8, 7, 6, 5} {
		b.Insert(Entry{Score: s})
	}

	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"new best", 100, 0},
		{"ties rank after existing", 40, 3},
		{"evicted", 1, -1},
		{"equal to last is evicted", 7, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Insert(Entry{Score: tt.score, Country: tt.name}); got != tt.want {
				t.Errorf("Insert(%d) rank = %d, want %d", tt.score, got, tt.want)
			}
		})
	}

	entries := b.Entries()
	if entries[0].Score != 100 || entries[len(entries)-1].Score != 7 {
		t.Errorf("board = %v", entries)
	}
	if entries[3].Country != "ties rank after existing" {
		t.Errorf("tie should rank after the earlier 40, got %v", entries[2:4])
	}
}

func TestBoardQualifies(t *testing.T) {
	var b Board
	if !b.Qualifies(0) {
		t.Error("any score qualifies on a board with room")
	}
	for i := 0; i < MaxEntries; i++ {
		b.Insert(Entry{Score: 10})
	}
	if b.Qualifies(10) {
		t.Error("tying the last entry of a full board should not qualify")
	}
	if !b.Qualifies(11) {
		t.Error("beating the last entry should qualify")
	}
}

func TestBoardJSONFormat(t *testing.T) {
	var empty Board
	data, err := json.Marshal(&empty)
	if err != nil || string(data) != "[]" {
		t.Errorf("empty board = %s, %v; want []", data, err)
	}

	var b Board
	b.Insert(Entry{Score: 10, Date: "2024-05-01", Country: "Unknown"})
	data, err = json.Marshal(&b)
	if err != nil {
		t.Fatal(err)
	}
	if want := `[{"score":10,"date":"2024-05-01","country":"Unknown"}]`; string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestBoardUnmarshalRepairs(t *testing.T) {
	raw := `[{"score":1},{"score":30},{"score":2},{"score":5},{"score":7},{"score":9},
		{"score":11},{"score":13},{"score":17},{"score":19},{"score":23},{"score":29}]`
	var b Board
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatal(err)
	}
	entries := b.Entries()
	if len(entries) != MaxEntries || entries[0].Score != 30 || entries[MaxEntries-1].Score != 5 {
		t.Errorf("repaired board = %v", entries)
	}
}

package lobby

import (
	"testing"
	"time"
)

func TestRegisterUnregister(t *testing.T) {
	l := New()
	a := l.Register("alice")
	b := l.Register("bob")
	if a.ID == b.ID {
		t.Fatalf("handles share ID %d", a.ID)
	}
	if got := l.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	l.Unregister(a.ID)
	l.Unregister(999)
	if got := l.Count(); got != 1 {
		t.Errorf("Count after unregister = %d, want 1", got)
	}
}

func TestBroadcastSkipsSender(t *testing.T) {
	l := New()
	a := l.Register("alice")
	b := l.Register("bob")

	l.Broadcast(Notice{Type: NoticeHighScore, Username: "alice", Score: 500, Rank: 0}, a.ID)

	select {
	case n := <-b.Notices:
		if n.Type != NoticeHighScore || n.Score != 500 {
			t.Errorf("bob got %+v", n)
		}
	default:
		t.Error("bob received nothing")
	}
	select {
	case n := <-a.Notices:
		t.Errorf("sender received its own notice %+v", n)
	default:
	}
}

func TestBroadcastDropsWhenQueueFull(t *testing.T) {
	l := New()
	h := l.Register("slow")
	for i := 0; i < cap(h.Notices)+5; i++ {
		l.Broadcast(Notice{Type: NoticeHighScore, Score: i}, 0)
	}
	if got := len(h.Notices); got != cap(h.Notices) {
		t.Errorf("queued %d notices, want %d", got, cap(h.Notices))
	}
}

func TestShutdownWaitsForClients(t *testing.T) {
	l := New()
	h := l.Register("alice")

	go func() {
		n := <-h.Notices
		if n.Type == NoticeShutdown {
			l.Unregister(h.ID)
		}
	}()

	start := time.Now()
	l.Shutdown(5 * time.Second)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Shutdown took %v, expected it to return once the client left", elapsed)
	}
	if l.Count() != 0 {
		t.Errorf("Count = %d after shutdown", l.Count())
	}
}

func TestShutdownTimesOut(t *testing.T) {
	l := New()
	l.Register("stubborn")

	start := time.Now()
	l.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Shutdown returned after %v, before the timeout", elapsed)
	}
}

package server

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func startServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	s := NewServer(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)
	return s
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func expectEvent(t *testing.T, h *ClientHandle, want ClientEventType) {
	t.Helper()
	select {
	case ev := <-h.EventsCh:
		if ev.Type != want {
			t.Fatalf("event = %v, want %v", ev.Type, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event %v", want)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	s := startServer(t)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatal("client IDs are not unique")
	}
	waitFor(t, "two players", func() bool { return s.GetStatus().Players == 2 })

	s.UnregisterClient(a.ID)
	waitFor(t, "one player", func() bool { return s.GetStatus().Players == 1 })

	if _, ok := <-a.EventsCh; ok {
		t.Fatal("events channel of an unregistered client is still open")
	}
}

func TestUsernameIsTruncated(t *testing.T) {
	s := startServer(t)
	h := s.RegisterClient(strings.Repeat("x", 40))
	if len(h.Username) != 16 {
		t.Fatalf("username length = %d, want 16", len(h.Username))
	}
}

func TestBoardRecords(t *testing.T) {
	s := startServer(t)
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	s.ReportScore(a.ID, 30)
	expectEvent(t, a, EventBoardRecord)
	s.ReportScore(b.ID, 50)
	expectEvent(t, b, EventBoardRecord)

	// A worse run by the same name does not replace the entry.
	s.ReportScore(a.ID, 10)
	s.ReportScore(a.ID, 0)

	waitFor(t, "board with two entries", func() bool { return len(s.GetStatus().TopScores) == 2 })
	top := s.GetStatus().TopScores
	if top[0].Username != "bob" || top[0].Score != 50 || top[1].Username != "alice" || top[1].Score != 30 {
		t.Fatalf("board = %+v", top)
	}

	select {
	case ev := <-a.EventsCh:
		t.Fatalf("unexpected event %v for a worse run", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScoreRightAfterRegisterIsRecorded(t *testing.T) {
	s := startServer(t)
	for i := range 50 {
		h := s.RegisterClient("player")
		s.ReportScore(h.ID, 100+i)
		expectEvent(t, h, EventBoardRecord)
	}
}

func TestScoreBeforeUnregisterIsKept(t *testing.T) {
	s := startServer(t)
	for i := range 20 {
		h := s.RegisterClient(string(rune('a' + i%5)))
		s.ReportScore(h.ID, i+1)
		s.UnregisterClient(h.ID)
	}
	waitFor(t, "board of five", func() bool {
		st := s.GetStatus()
		return len(st.TopScores) == 5 && st.Players == 0
	})
	top := s.GetStatus().TopScores
	if top[0].Score != 20 || top[4].Score != 16 {
		t.Fatalf("board = %+v, want best runs 20..16", top)
	}
}

func TestBoardResetsOnNewDay(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)}
	s := startServer(t, WithClock(clock.Now))
	a := s.RegisterClient("alice")

	s.ReportScore(a.ID, 12)
	expectEvent(t, a, EventBoardRecord)
	waitFor(t, "entry", func() bool { return len(s.GetStatus().TopScores) == 1 })

	clock.Set(time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC))
	waitFor(t, "empty board", func() bool {
		st := s.GetStatus()
		return len(st.TopScores) == 0 && st.Day == "2026-03-02"
	})
}

func TestBoardTopLimitsAndOrders(t *testing.T) {
	now := time.Now()
	b := newBoard(now)
	for i, score := range []int{5, 9, 9, 1, 7, 3} {
		b.record(now, i+1, string(rune('a'+i)), score)
	}
	top := b.top(3)
	got := []string{top[0].Username, top[1].Username, top[2].Username}
	want := []string{"b", "c", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("top = %v, want %v", got, want)
		}
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := startServer(t)
	h := s.RegisterClient("alice")
	waitFor(t, "player", func() bool { return s.GetStatus().Players == 1 })

	go func() {
		for ev := range h.EventsCh {
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(h.ID)
			}
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 3*time.Second {
		t.Fatal("Shutdown did not return once all clients left")
	}
}

package server

import (
	"cmp"
	"slices"
	"time"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Status is an immutable view of the shared server state for rendering.
type Status struct {
	Players   int
	TopScores []TopScoreEntry // Best runs of the current day
	Day       string          // Day the board belongs to, YYYY-MM-DD
}

// board keeps the best score per username for one day.
type board struct {
	day     string
	entries map[string]TopScoreEntry
}

func newBoard(now time.Time) *board {
	return &board{day: dayOf(now), entries: make(map[string]TopScoreEntry)}
}

func dayOf(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// record stores a finished run, resetting the board when the day rolls over.
// It reports whether the run entered or improved the board.
func (b *board) record(now time.Time, clientID int, username string, score int) bool {
	if d := dayOf(now); d != b.day {
		b.day = d
		clear(b.entries)
	}
	if score <= 0 {
		return false
	}
	if prev, ok := b.entries[username]; ok && prev.Score >= score {
		return false
	}
	b.entries[username] = TopScoreEntry{Username: username, Score: score, clientID: clientID}
	return true
}

// top returns the n best entries, highest score first.
func (b *board) top(n int) []TopScoreEntry {
	out := make([]TopScoreEntry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

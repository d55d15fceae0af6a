package game

import (
	"errors"
	"testing"
	"time"
)

const frame = time.Second / 60

// scriptedRand returns vals in order, then fallback forever.
type scriptedRand struct {
	vals     []float64
	fallback float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.vals) == 0 {
		return r.fallback
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

// memStore records every save.
type memStore struct {
	high    int
	saves   []int
	saveErr error
}

func (s *memStore) Load() (int, error) { return s.high, nil }

func (s *memStore) Save(score int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.high = score
	s.saves = append(s.saves, score)
	return nil
}

var errDiskFull = errors.New("disk full")

// newTestGame builds a game whose random rolls never produce hazards or pickups.
func newTestGame(t *testing.T, store HighScoreStore) *Game {
	t.Helper()
	g, err := New(DefaultConfig(), &scriptedRand{fallback: 0.99}, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// shipCenter returns the centre of the ship's box.
func shipCenter(g *Game) (float64, float64) {
	s := g.world.Ship
	return s.X + s.Width/2, s.Y + s.Height/2
}

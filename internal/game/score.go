package game

import "fmt"

// HighScoreStore persists the best score across runs.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// ScoreTracker accumulates the score of the current run and keeps the
// high-water mark in sync with its store.
type ScoreTracker struct {
	Score     int
	HighScore int
	store     HighScoreStore
}

// NewScoreTracker reads the stored high score. A nil store disables persistence.
func NewScoreTracker(store HighScoreStore) (*ScoreTracker, error) {
	t := &ScoreTracker{store: store}
	if store == nil {
		return t, nil
	}
	high, err := store.Load()
	if err != nil {
		return t, fmt.Errorf("load high score: %w", err)
	}
	if high > 0 {
		t.HighScore = high
	}
	return t, nil
}

// Add increments the score by n and persists a new high score right away.
func (t *ScoreTracker) Add(n int) error {
	if n <= 0 {
		return nil
	}
	t.Score += n
	if t.Score <= t.HighScore {
		return nil
	}
	t.HighScore = t.Score
	if t.store == nil {
		return nil
	}
	if err := t.store.Save(t.HighScore); err != nil {
		return fmt.Errorf("save high score %d: %w", t.HighScore, err)
	}
	return nil
}

// Reset clears the current score; the high score is kept.
func (t *ScoreTracker) Reset() {
	t.Score = 0
}

// Package store persists the high score.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrCorrupt is returned when the high-score file exists but cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt high score file")

// record is the on-disk format.
type record struct {
	HighScore int       `json:"highScore"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileStore keeps the high score in a small JSON file.
// It is safe for concurrent use by multiple game sessions.
type FileStore struct {
	path string
	mu   sync.Mutex
	high int
}

// NewFileStore creates a store backed by the file at path.
// The file is created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored high score. A missing file yields zero.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.high, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.path, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.HighScore < 0 {
		return 0, fmt.Errorf("%w: %s", ErrCorrupt, s.path)
	}
	if rec.HighScore > s.high {
		s.high = rec.HighScore
	}
	return s.high, nil
}

// Save writes score if it beats the stored value. Lower scores are ignored so
// that concurrent sessions can never lower the shared high score.
func (s *FileStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if score <= s.high {
		return nil
	}

	data, err := json.MarshalIndent(record{HighScore: score, UpdatedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal high score: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp high score: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace high score: %w", err)
	}

	s.high = score
	return nil
}

// MemoryStore keeps the high score in memory only.
type MemoryStore struct {
	mu   sync.Mutex
	high int
}

// NewMemoryStore creates a store seeded with high.
func NewMemoryStore(high int) *MemoryStore {
	return &MemoryStore{high: high}
}

// Load returns the current high score.
func (s *MemoryStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.high, nil
}

// Save keeps score if it beats the current value.
func (s *MemoryStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.high {
		s.high = score
	}
	return nil
}

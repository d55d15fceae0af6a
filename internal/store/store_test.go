package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileStoreMissingFileIsZero(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "high.json"))
	high, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if high != 0 {
		t.Fatalf("high = %d, want 0", high)
	}
}

func TestFileStoreSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "high.json")
	s := NewFileStore(path)
	if err := s.Save(17); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(5); err != nil {
		t.Fatalf("Save lower: %v", err)
	}

	reloaded := NewFileStore(path)
	high, err := reloaded.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if high != 17 {
		t.Fatalf("high = %d, want 17", high)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
}

func TestFileStoreConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high.json")
	s := NewFileStore(path)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if err := s.Save(score); err != nil {
				t.Errorf("Save(%d): %v", score, err)
			}
		}(i)
	}
	wg.Wait()

	high, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if high != 20 {
		t.Fatalf("high = %d, want 20", high)
	}
}

func TestMemoryStoreKeepsMaximum(t *testing.T) {
	s := NewMemoryStore(3)
	_ = s.Save(2)
	_ = s.Save(9)
	_ = s.Save(4)
	if high, _ := s.Load(); high != 9 {
		t.Fatalf("high = %d, want 9", high)
	}
}

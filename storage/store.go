// Package storage persists the attempt counter and the high score.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Record is everything that survives between sessions.
type Record struct {
	Attempts  int `yaml:"attempts"`
	HighScore int `yaml:"high_score"`
}

// MemoryStore keeps the record in memory only. Used by headless runs and
// tests.
type MemoryStore struct {
	rec Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// IncrementAttempts bumps and returns the attempt counter.
func (s *MemoryStore) IncrementAttempts() (int, error) {
	s.rec.Attempts++
	return s.rec.Attempts, nil
}

// HighScore returns the best score so far.
func (s *MemoryStore) HighScore() (int, error) {
	return s.rec.HighScore, nil
}

// SaveHighScore stores score if it is strictly greater than the current
// high score and reports whether it did.
func (s *MemoryStore) SaveHighScore(score int) (bool, error) {
	if score <= s.rec.HighScore {
		return false, nil
	}
	s.rec.HighScore = score
	return true, nil
}

// FileStore keeps the record in a YAML file. Every change is written
// through immediately.
type FileStore struct {
	path string
	rec  Record
}

// OpenFileStore loads the record at path. A missing file starts an empty
// record; the file is created on the first write.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.rec); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	return s, nil
}

// IncrementAttempts bumps, persists and returns the attempt counter. The
// in-memory counter advances even when the write fails.
func (s *FileStore) IncrementAttempts() (int, error) {
	s.rec.Attempts++
	return s.rec.Attempts, s.save()
}

// HighScore returns the best score so far.
func (s *FileStore) HighScore() (int, error) {
	return s.rec.HighScore, nil
}

// SaveHighScore persists score if it is strictly greater than the current
// high score and reports whether it did.
func (s *FileStore) SaveHighScore(score int) (bool, error) {
	if score <= s.rec.HighScore {
		return false, nil
	}
	s.rec.HighScore = score
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// save writes the record to a temp file and renames it into place.
func (s *FileStore) save() error {
	data, err := yaml.Marshal(&s.rec)
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore is a durable key-value store holding one JSON document per key.
// The chat session log is the only writer in this design.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Get returns the stored value for key, or nil when the key has never been
// written.
func (s *LocalStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value via a temp file and rename so a crash mid-write never
// leaves a truncated document behind.
func (s *LocalStore) Set(key string, value []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}

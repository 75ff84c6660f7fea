// Package configfile binds the directive artifact on disk: loading and
// rewriting it for the heal pipeline, signalling the host to reload, and
// watching it for external edits.
package configfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and rewrites the artifact. Writes go through a temp file and
// rename so the host never observes a half-written artifact.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("load directive artifact: %w", err)
	}
	return string(data), nil
}

func (s *Store) Store(_ context.Context, text string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".wardmind-*")
	if err != nil {
		return fmt.Errorf("store directive artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store directive artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store directive artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store directive artifact: %w", err)
	}
	return nil
}

package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"msys-console/internal/logger"
)

// Store persists the installed version token in a single plain-text marker file.
// The marker holds exactly one token; its presence means an environment was
// installed at some point, possibly only partially.
type Store struct {
	path string
}

// NewStore returns a Store backed by the marker file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the marker file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns the installed version token.
// A missing marker is not an error: it reports ok == false.
func (s *Store) Current() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("[DEBUG] No version marker at %s\n", s.path)
			return "", false, nil
		}
		return "", false, fmt.Errorf("read version marker %s: %w", s.path, err)
	}

	// Only line terminators are dropped; the token is otherwise compared verbatim.
	version := strings.TrimRight(string(data), "\r\n")
	logger.Debug("[DEBUG] Version marker %s holds %q\n", s.path, version)
	return version, true, nil
}

// Record replaces the marker content with exactly version.
func (s *Store) Record(version string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create marker directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(version), 0644); err != nil {
		return fmt.Errorf("write version marker %s: %w", s.path, err)
	}
	logger.Debug("[DEBUG] Recorded version %s in %s\n", version, s.path)
	return nil
}

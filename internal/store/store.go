// Package store persists the small amount of client-local state rehearse
// keeps between runs: the session cookie and the form pre-fill hints.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rehearsehq/rehearse/pkg/domain"
)

const (
	cookieFile = "cookie"
	hintsFile  = "hints.json"
)

// Store reads and writes files under a single directory, ~/.rehearse by
// default.
type Store struct {
	dir string
}

// Default returns a store rooted at ~/.rehearse.
func Default() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("store.Default: get home dir: %w", err)
	}
	return &Store{dir: filepath.Join(home, ".rehearse")}, nil
}

// At returns a store rooted at the given directory.
func At(dir string) *Store {
	return &Store{dir: dir}
}

// Cookie returns the saved session cookie, or empty if none is saved.
func (s *Store) Cookie() string {
	data, err := os.ReadFile(filepath.Join(s.dir, cookieFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveCookie writes the session cookie with owner-only permissions.
func (s *Store) SaveCookie(v string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("store.SaveCookie: create dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, cookieFile), []byte(v), 0600); err != nil {
		return fmt.Errorf("store.SaveCookie: %w", err)
	}
	return nil
}

// ClearCookie removes the saved cookie. Missing file is not an error.
func (s *Store) ClearCookie() error {
	err := os.Remove(filepath.Join(s.dir, cookieFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store.ClearCookie: %w", err)
	}
	return nil
}

// Hints returns the saved pre-fill hints. A missing or unreadable file
// yields zero hints; pre-fill is a convenience, never an error.
func (s *Store) Hints() domain.Hints {
	var h domain.Hints
	data, err := os.ReadFile(filepath.Join(s.dir, hintsFile))
	if err != nil {
		return h
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return domain.Hints{}
	}
	return h
}

// SaveHints writes the pre-fill hints returned by a successful login.
func (s *Store) SaveHints(h domain.Hints) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("store.SaveHints: create dir: %w", err)
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("store.SaveHints: marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, hintsFile), data, 0600); err != nil {
		return fmt.Errorf("store.SaveHints: %w", err)
	}
	return nil
}

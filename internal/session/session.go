// Package session supplies the current authenticated identity. The sync
// core only ever consumes "current user id or none" and "is the backend
// configured"; everything else about auth lives outside this repository.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider is the identity interface the state container consumes.
type Provider interface {
	// UserID returns the current identity, or "" in anonymous mode.
	UserID() string
	// Configured reports whether the backend is reachable with credentials.
	// False forces permanent local-only mode regardless of identity.
	Configured() bool
}

// Session is the locally persisted identity record.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Load reads the session file. A missing file is an anonymous session, not
// an error.
func Load(path string) (Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// Corrupt session means anonymous, same as a corrupt slot.
		return Session{}, nil
	}
	s.UserID = strings.TrimSpace(s.UserID)
	return s, nil
}

// Save writes the session file, creating directories as needed.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Missing files are fine.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Static is a fixed Provider, used by the CLI after loading the session
// file and by tests.
type Static struct {
	ID      string
	Backend bool
}

func (s Static) UserID() string   { return s.ID }
func (s Static) Configured() bool { return s.Backend }

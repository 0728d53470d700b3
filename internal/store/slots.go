package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Get loads the slot at key, falling back to def when the slot is missing.
// Corrupt JSON is logged and treated as absence; it is never surfaced to the
// caller.
func Get[T any](s *Store, key string, def T) T {
	raw, _, ok := s.read(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("corrupt slot, using default", "key", key, "err", err)
		return def
	}
	return v
}

// GetFresh behaves like Get but treats slots older than maxAge as absent,
// purging them on the way out.
func GetFresh[T any](s *Store, key string, def T, maxAge time.Duration) T {
	raw, updatedAt, ok := s.read(key)
	if !ok {
		return def
	}
	if time.Since(updatedAt) > maxAge {
		if err := s.Clear(key); err != nil {
			s.log.Warn("purge stale slot", "key", key, "err", err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("corrupt slot, using default", "key", key, "err", err)
		return def
	}
	return v
}

// Set serializes v into the slot at key. The write is synchronous; any
// error is for the caller to log, since in-memory state stays authoritative.
func Set[T any](s *Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %q: %w", key, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

// Update applies fn to the current slot value (or def when absent) and
// stores the result, returning the new value.
func Update[T any](s *Store, key string, def T, fn func(T) T) (T, error) {
	next := fn(Get(s, key, def))
	return next, Set(s, key, next)
}

// Clear removes the durable slot at key.
func (s *Store) Clear(key string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("clear slot %q: %w", key, err)
	}
	return nil
}

// ClearAll wipes every slot. Used on identity change and data reset.
func (s *Store) ClearAll() error {
	_, err := s.db.Exec(`DELETE FROM slots`)
	if err != nil {
		return fmt.Errorf("clear all slots: %w", err)
	}
	return nil
}

func (s *Store) read(key string) ([]byte, time.Time, bool) {
	var value, updated string
	err := s.db.QueryRow(`SELECT value, updated_at FROM slots WHERE key = ?`, key).Scan(&value, &updated)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("read slot", "key", key, "err", err)
		}
		return nil, time.Time{}, false
	}
	updatedAt, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		updatedAt = time.Time{}
	}
	return []byte(value), updatedAt, true
}

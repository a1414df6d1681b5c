package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/vitrine/internal/platform"
)

// PreferenceStore implements platform.Storage on the preferences table.
type PreferenceStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ platform.Storage = (*PreferenceStore)(nil)

func newPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db, now: time.Now}
}

// Get returns the stored value for key. A missing key is not an error.
func (s *PreferenceStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (s *PreferenceStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *PreferenceStore) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove preference %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (s *PreferenceStore) UpdatedAt(key string) (time.Time, bool, error) {
	var ts int64
	err := s.db.QueryRow(`SELECT updated_at FROM preferences WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return time.Unix(ts, 0), true, nil
}

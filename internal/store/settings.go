// internal/store/settings.go
package store

import (
	"database/sql"
	"fmt"
)

// Setting ids in use.
const (
	SettingPIN = "pin"
)

// GetSetting retrieves a setting value by id. Returns empty string if the
// record does not exist.
func (s *Store) GetSetting(id string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE id = ?", id).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", id, err)
	}
	return value, nil
}

// SetSetting stores a setting record by id (upsert).
func (s *Store) SetSetting(id, typ, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, type, value)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET type = excluded.type, value = excluded.value
	`, id, typ, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", id, err)
	}
	return nil
}

// HasSetting reports whether a non-empty value is stored under id.
func (s *Store) HasSetting(id string) bool {
	value, err := s.GetSetting(id)
	return err == nil && value != ""
}

// internal/store/authors.go
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateAuthor reports a declined add: the name is already on the
// block-list (case-insensitively). It is a user-facing outcome, not a
// storage failure.
var ErrDuplicateAuthor = errors.New("author is already blocked")

// BlockedAuthor is one block-list record. Names are stored lowercased.
type BlockedAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorExists reports whether name is already on the block-list,
// case-insensitively. The NOCASE unique index makes this a direct lookup.
func (s *Store) AuthorExists(name string) (bool, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM blocked_authors WHERE name = ? COLLATE NOCASE", name,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check author: %w", err)
	}
	return true, nil
}

// AddAuthor inserts name (lowercased) and returns the new record's id.
// A case-insensitive duplicate returns ErrDuplicateAuthor without inserting;
// the unique index makes the check-and-insert atomic, so two concurrent adds
// of the same name cannot both succeed.
func (s *Store) AddAuthor(name string) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	res, err := s.db.Exec("INSERT INTO blocked_authors (name) VALUES (?)", name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateAuthor
		}
		return 0, fmt.Errorf("failed to add author: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new author id: %w", err)
	}
	return id, nil
}

// DeleteAuthor removes the record with the given id. Deleting an id that
// does not exist is a no-op, mirroring key-value delete semantics.
func (s *Store) DeleteAuthor(id int64) error {
	if _, err := s.db.Exec("DELETE FROM blocked_authors WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}

// ListAuthors returns every block-list record in storage iteration order.
func (s *Store) ListAuthors() ([]BlockedAuthor, error) {
	rows, err := s.db.Query("SELECT id, name FROM blocked_authors")
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]BlockedAuthor, 0)
	for rows.Next() {
		var a BlockedAuthor
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// ClearAuthors removes every block-list record.
func (s *Store) ClearAuthors() error {
	if _, err := s.db.Exec("DELETE FROM blocked_authors"); err != nil {
		return fmt.Errorf("failed to clear authors: %w", err)
	}
	return nil
}

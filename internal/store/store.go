// Package store provides durable storage for the author block-list and the
// settings records, on top of the shared database handle.
package store

import (
	"github.com/markb/blockwarden/internal/db"
)

// Store handles block-list and settings persistence. Every operation runs
// its own implicit transaction; the handle itself is safe for concurrent use.
type Store struct {
	db *db.DB
}

// New creates a new Store.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

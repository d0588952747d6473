// internal/db/migrations.go
package db

import "fmt"

// SchemaVersion is the schema version the binary expects. It is recorded in
// PRAGMA user_version after a successful RunMigrations.
const SchemaVersion = 2

// Version 1: the author block-list. Names are stored lowercased; the NOCASE
// unique index turns the duplicate check into an atomic conditional insert
// instead of a scan-then-insert.
const blockedAuthorsSchema = `
CREATE TABLE IF NOT EXISTS blocked_authors (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name  TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_blocked_authors_name
    ON blocked_authors(name COLLATE NOCASE);
`

// Version 2: generic settings records. The only id currently in use is
// "pin", holding the hex SHA-256 digest of the access PIN.
const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
    id     TEXT PRIMARY KEY,
    type   TEXT NOT NULL,
    value  TEXT NOT NULL
);
`

// migrations is ordered; index i holds the SQL that brings the schema from
// version i to version i+1.
var migrations = []string{
	blockedAuthorsSchema,
	settingsSchema,
}

// RunMigrations brings the database up to SchemaVersion. It is idempotent:
// already-applied versions are skipped, and every statement uses
// IF NOT EXISTS so a partially recorded upgrade can be replayed safely.
func (db *DB) RunMigrations() error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for v := current; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("failed to apply schema version %d: %w", v+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", v+1, err)
		}
	}

	return nil
}

package store

import (
	"database/sql"
	"fmt"
)

// migrations[i] upgrades the schema from user_version i to i+1.
var migrations = []func(tx *sql.Tx) error{
	migrateV1,
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return fmt.Errorf("migrate: read user_version: %w", err)
	}

	for ; v < len(migrations); v++ {
		if err := migrations[v](tx); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		// PRAGMA does not take bind parameters
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, v+1)); err != nil {
			return fmt.Errorf("migrate: set user_version: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(tx *sql.Tx) error {
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS hotels (
  id TEXT PRIMARY KEY,
  source_id TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  facilities TEXT NOT NULL DEFAULT '[]',
  address TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  rating REAL NOT NULL DEFAULT 0,
  price REAL NOT NULL DEFAULT 0,
  url TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_hotels_source_id
ON hotels(source_id);
`); err != nil {
		return err
	}

	_, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_hotels_first_seen
ON hotels(first_seen);
`)
	return err
}

// Package db provides database schema migration management.
package db

import (
	"fmt"
	"time"
)

// migration is a single in-code schema migration.
type migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations are applied in order; versions must be contiguous from 1.
var migrations = []migration{
	{
		Version:     1,
		Description: "create offline_complaints",
		SQL: `
		CREATE TABLE IF NOT EXISTS offline_complaints (
			local_id    TEXT PRIMARY KEY,
			fields      TEXT NOT NULL,
			sync_status TEXT NOT NULL DEFAULT 'pending'
				CHECK(sync_status IN ('pending', 'syncing')),
			queued_at   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_offline_complaints_status
			ON offline_complaints(sync_status);`,
	},
}

// Migrate brings the schema up to the latest version.
func (db *DB) Migrate() error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version     INTEGER PRIMARY KEY CHECK(version > 0),
		applied_at  INTEGER NOT NULL,
		description TEXT NOT NULL
	);`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	current, err := db.CurrentVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
			m.Version, time.Now().Unix(), m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the current schema version.
func (db *DB) CurrentVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

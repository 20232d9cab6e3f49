package repositories

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/spotsync/internal/shared"
)

// migration pairs a schema version with its up SQL.
type migration struct {
	Version int
	Up      string
}

var migrations = []migration{
	{
		Version: 1,
		Up: `
			CREATE TABLE IF NOT EXISTS tracks (
				uri TEXT PRIMARY KEY,
				service_id TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL DEFAULT '',
				artist TEXT NOT NULL DEFAULT '',
				album TEXT NOT NULL DEFAULT '',
				release_date TEXT NOT NULL DEFAULT '',
				duration_ms INTEGER NOT NULL DEFAULT 0,
				isrc TEXT NOT NULL DEFAULT '',
				cached_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_tracks_isrc ON tracks (isrc)
		`,
	},
}

// Open opens (creating if necessary) the track-cache database at the given
// path and applies pending migrations.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// runMigrations applies all pending migrations, tracking the applied versions
// in a schema_migrations table.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", m.Version).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.Up); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
		return err
	}

	return tx.Commit()
}

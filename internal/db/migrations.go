package db

import (
	"fmt"
	"log"
)

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	// Databases created before the settings table was introduced
	if err := db.runSettingsTableMigration(); err != nil {
		return err
	}

	// Run updated_at column migration
	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}

	return nil
}

func (db *DB) runSettingsTableMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = 'settings'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for settings table: %w", err)
	}

	if count == 0 {
		log.Println("Running migration: Creating settings table...")

		_, err := db.conn.Exec(`
			CREATE TABLE IF NOT EXISTS settings (
			    key TEXT PRIMARY KEY,
			    value BLOB NOT NULL,
			    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return fmt.Errorf("creating settings table: %w", err)
		}

		log.Println("Settings migration completed successfully")
	}

	return nil
}

func (db *DB) runUpdatedAtMigration() error {
	// Check if updated_at column exists
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('settings')
		WHERE name = 'updated_at'
	`).Scan(&count)

	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	// If column doesn't exist, add it
	if count < 1 {
		log.Println("Running migration: Adding settings updated_at column...")

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}
		defer tx.Rollback()

		// SQLite refuses non-constant defaults on ADD COLUMN; Set always writes it.
		_, err = tx.Exec(`ALTER TABLE settings ADD COLUMN updated_at DATETIME`)
		if err != nil && err.Error() != "duplicate column name: updated_at" {
			return fmt.Errorf("adding updated_at column: %w", err)
		}

		if _, err := tx.Exec(`UPDATE settings SET updated_at = CURRENT_TIMESTAMP WHERE updated_at IS NULL`); err != nil {
			return fmt.Errorf("backfilling updated_at: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration: %w", err)
		}

		log.Println("Migration completed successfully")
	}

	return nil
}

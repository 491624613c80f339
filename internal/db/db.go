package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdxmph/goals-tui/internal/kv"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection
func Open(dbPath string) (*DB, error) {
	// Check if DB exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'goals-tui init' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}

	// Run any pending migrations
	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Name returns the backend identifier
func (db *DB) Name() string {
	return "sqlite"
}

// GetSetting retrieves a single setting row by key
func (db *DB) GetSetting(key string) (*Setting, error) {
	query := `
		SELECT key, value, updated_at
		FROM settings
		WHERE key = ?
	`

	var s Setting
	err := db.conn.QueryRow(query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Get returns the value stored under key
func (db *DB) Get(key string) ([]byte, error) {
	s, err := db.GetSetting(key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return s.Value, nil
}

// Set overwrites the value stored under key
func (db *DB) Set(key string, value []byte) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = CURRENT_TIMESTAMP
	`
	if value == nil {
		value = []byte{}
	}
	if _, err := db.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// ListSettings returns every stored setting ordered by key
func (db *DB) ListSettings() ([]Setting, error) {
	rows, err := db.conn.Query(`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}

// Register the sqlite backend
func init() {
	kv.Register("sqlite", func(path string) (kv.Store, error) { return Open(path) })
}

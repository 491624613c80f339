package db

import "database/sql"

// Setting is one slot of the key-value settings table
type Setting struct {
	Key       string
	Value     []byte
	UpdatedAt sql.NullTime
}

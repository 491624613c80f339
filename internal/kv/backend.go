// Package kv defines the flat key-value slot store goal state is persisted to.
package kv

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a local key-value settings store. Values are opaque blobs; a Set
// always overwrites the previous value for the key.
type Store interface {
	// Name returns the backend identifier (e.g., "sqlite", "memory")
	Name() string

	// Get returns the value stored under key, or ErrNotFound
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key
	Set(key string, value []byte) error

	// Close releases any resources held by the backend
	Close() error
}

// Factory opens a backend rooted at path. Backends without on-disk state
// ignore path.
type Factory func(path string) (Store, error)

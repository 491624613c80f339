package kv

import "sync"

// Memory is a process-local backend. Nothing survives a restart; it backs
// tests and --ephemeral runs.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Name returns the backend identifier
func (m *Memory) Name() string {
	return "memory"
}

// Get returns a copy of the stored value
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}

// Register the memory backend
func init() {
	Register("memory", func(string) (Store, error) { return NewMemory(), nil })
}

package progress

import (
	"context"
	"strconv"
	"sync"
)

// MemoryKV is an in-memory KV. State is lost when the process exits;
// it backs play sessions that run without a database.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get looks up key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Add increments the integer under key.
func (m *MemoryKV) Add(_ context.Context, key string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := strconv.Atoi(m.values[key])
	if err != nil || n < 0 {
		n = 0
	}
	n += delta
	m.values[key] = strconv.Itoa(n)
	return n, nil
}

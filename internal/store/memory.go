package store

import (
	"context"
	"sync"

	"github.com/erazemk/vitrina/internal/model"
)

// Memory is an in-process store. Nothing survives a restart; it backs tests
// and the "memory" store option.
type Memory struct {
	mu       sync.RWMutex
	values   map[string]string
	readErr  error
	writeErr error
	writes   int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// FailReads makes every Get fail with err until called again with nil.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every Set fail with err until called again with nil.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.readErr != nil {
		return "", false, model.StorageError("reading memory key", m.readErr)
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return model.StorageError("writing memory key", m.writeErr)
	}
	m.values[key] = value
	m.writes++
	return nil
}

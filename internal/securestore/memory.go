package securestore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and previews. Its Deny switch
// simulates the platform store refusing access to a key, which is how the
// "user cancelled a protected read" path is exercised without a device.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	denied map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		items:  make(map[string]string),
		denied: make(map[string]struct{}),
	}
}

// Deny makes every subsequent operation on key fail with ErrAccessDenied.
func (m *Memory) Deny(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[key] = struct{}{}
}

// Allow reverts Deny for key.
func (m *Memory) Allow(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.denied, key)
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.denied[key]; ok {
		return ErrAccessDenied
	}
	m.items[key] = value
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.denied[key]; ok {
		return "", false, ErrAccessDenied
	}
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.denied[key]; ok {
		return ErrAccessDenied
	}
	delete(m.items, key)
	return nil
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

package storage

import "sync"

// Memory is a map-backed Storage. Nothing survives Close.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
	// FailWrites makes Set and Remove return an error, for exercising
	// best-effort persistence.
	FailWrites bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.FailWrites {
		return ErrClosed
	}
	m.items[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.FailWrites {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

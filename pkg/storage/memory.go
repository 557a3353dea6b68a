package storage

import (
	"context"
	"sync"
)

// Memory is a process-local Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }

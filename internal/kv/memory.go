package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Repository. It is the default backend and the test double.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers Watchers
}

var _ Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()

	m.watchers.Notify(key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	m.watchers.Notify(key)
	return nil
}

func (m *Memory) Watch(key string, fn func(key string)) func() {
	return m.watchers.Add(key, fn)
}

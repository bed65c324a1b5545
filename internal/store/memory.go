package store

import (
	"encoding/json"
	"sync"
)

// Memory is a Storage backed by a map, used in tests and in the native
// build of pages that never persist.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string, v any) error {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return ErrNoValue
	}
	return json.Unmarshal(raw, v)
}

func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(key string) {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}

// Len reports how many keys are held, handy for clearing assertions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

package storage

import (
	"encoding/json"
	"fmt"
)

func MockShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewMockStorage(), nil
	}
}

// MockStorage keeps the encoded values in memory.
type MockStorage struct {
	Elements map[Key][]byte
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key][]byte)}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	m.Elements[k] = b
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	b, ok := m.Elements[k]
	if !ok {
		return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not unmarshal '%v': %v: %w", k, err, CouldNotLoadErr)
	}
	return nil
}

func MockEventRegistry() EventRegistry {
	return func(path string) (Registry, error) {
		return NewMockRegistry(), nil
	}
}

// MockRegistry keeps the added events in memory.
type MockRegistry struct {
	Events map[K][]interface{}
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		Events: make(map[K][]interface{}),
	}
}

func (m *MockRegistry) Add(key K, value interface{}) error {
	if _, ok := m.Events[key]; !ok {
		m.Events[key] = make([]interface{}, 0)
	}
	m.Events[key] = append(m.Events[key], value)
	return nil
}

func (m *MockRegistry) GetAll(key K, values interface{}) error {
	return nil
}

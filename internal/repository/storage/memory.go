package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage keeps values in process memory. Used by tests and the "memory" driver.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string][]byte),
	}
}

func (that *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return slices.Clone(value), nil
}

func (that *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = slices.Clone(value)

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}

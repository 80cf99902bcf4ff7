package repository

import (
	"context"
	"sync"

	app_errors "chat-animation/pkg/errors"
)

// MemoryKeyValueStore keeps blobs in process memory. Values are copied on
// the way in and out so callers cannot alias stored bytes.
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{data: make(map[string][]byte)}
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, app_errors.ErrStorageMiss
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryKeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

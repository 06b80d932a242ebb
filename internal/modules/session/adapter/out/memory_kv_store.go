package out

import (
	"context"
	"sync"

	sessionout "studybuddy/internal/modules/session/port/out"
)

// MemoryKVStore forgets everything on exit. It backs the memory driver and
// dry runs.
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: map[string]string{}}
}

var _ sessionout.KVStore = (*MemoryKVStore)(nil)

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

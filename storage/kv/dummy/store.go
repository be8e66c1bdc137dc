// Package dummykv is an in-memory core.KVStore for dev and tests.
package dummykv

import (
	"context"
	"sync"

	"github.com/taskistry/collabo/core"
)

type store struct {
	mu    sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*store)(nil) // interface compliance check

func NewStore() core.KVStore {
	return &store{table: make(map[string][]byte)}
}

func (s *store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.table[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.table[key] = cp
	return nil
}

func (s *store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.table, key)
	return nil
}

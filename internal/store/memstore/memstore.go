// Package memstore is the default in-memory KVStore adapter, used by
// tests, by pkg/sdk.Default, and by cmd/engine when no durable backend
// is configured. pkg/sdk.New does not substitute it: a nil store there
// means no storage at all.
// Grounded on the teacher's heuristics.AddressWatchlist: a single
// RWMutex guarding a map, read-heavy access pattern.
package memstore

import (
	"context"

	"github.com/rawblock/threatcore/internal/store"
	"sync"
)

// Store is an in-process KVStore. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

var _ store.KVStore = (*Store)(nil)

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

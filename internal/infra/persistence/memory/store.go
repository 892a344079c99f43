// Package memory provides an in-process repository.KVStore, used for tests
// and for sessions that do not need to survive a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"campuscart/internal/domain/repository"
)

// Store keeps slots in a map.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ repository.KVStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]

	return slices.Clone(v), ok, nil
}

// Set overwrites key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = slices.Clone(value)

	return nil
}

// Remove deletes key.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Apply performs all mutations under one lock.
func (s *Store) Apply(_ context.Context, mutations []repository.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range mutations {
		if m.Delete {
			delete(s.data, m.Key)

			continue
		}
		s.data[m.Key] = slices.Clone(m.Value)
	}

	return nil
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

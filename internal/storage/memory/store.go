// Package memory provides an in-memory variable store. It backs tests and
// setups that want fallback behavior without touching disk.
package memory

import (
	"context"
	"sync"

	"github.com/goliatone/go-envbee/pkg/interfaces/cache"
)

// Store keeps variables in a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ cache.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]string)}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *Store) Close() error { return nil }

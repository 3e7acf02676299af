package cache

import "context"

// Store exposes the minimal API the client needs from the local fallback
// cache: keyed get/set plus key enumeration for whole-cache reads. The store
// owns its own concurrency safety; the client layers no locking on top.
type Store interface {
	// Get returns (value, true, nil) on hit and ("", false, nil) on miss.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set persists key=value, last write wins.
	Set(ctx context.Context, key, value string) error
	// Keys enumerates every cached key. Order is unspecified.
	Keys(ctx context.Context) ([]string, error)
	// Close releases resources held by the store.
	Close() error
}

// Nop store returns misses and ignores writes.
type Nop struct{}

var _ Store = (*Nop)(nil)

func (n *Nop) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (n *Nop) Set(ctx context.Context, key, value string) error          { return nil }
func (n *Nop) Keys(ctx context.Context) ([]string, error)                { return nil, nil }
func (n *Nop) Close() error                                              { return nil }

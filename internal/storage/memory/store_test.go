package memory

import (
	"context"
	"sort"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "DB_HOST"); err != nil || ok {
		t.Fatalf("expected miss on empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "DB_HOST", "db.internal"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "DB_PORT", "5432"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "DB_HOST")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "db.internal" {
		t.Fatalf("expected db.internal, got %q ok=%v", value, ok)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "DB_HOST" || keys[1] != "DB_PORT" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, v := range []string{"first", "second", "third"} {
		if err := store.Set(ctx, "FEATURE_FLAG", v); err != nil {
			t.Fatalf("set %s: %v", v, err)
		}
	}

	value, ok, err := store.Get(ctx, "FEATURE_FLAG")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != "third" {
		t.Fatalf("expected third, got %s", value)
	}
}

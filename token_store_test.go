package authfront

import (
	"context"
	"errors"
	"testing"
)

func TestRedisTokenStoreRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	store := NewRedisTokenStore(rdb, defaultConfig().Token)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrCredentialAbsent) {
		t.Fatalf("expected ErrCredentialAbsent on empty store, got %v", err)
	}

	if err := store.Save(ctx, "tok-123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "tok-123" {
		t.Fatalf("expected tok-123, got %q", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrCredentialAbsent) {
		t.Fatalf("expected ErrCredentialAbsent after Clear, got %v", err)
	}
}

func TestRedisTokenStoreClearIsIdempotent(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	store := NewRedisTokenStore(rdb, defaultConfig().Token)
	ctx := context.Background()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestRedisTokenStoreKeyNamespace(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	cfg := TokenConfig{RedisPrefix: "frontend", Key: "currentUser"}
	store := NewRedisTokenStore(rdb, cfg)

	if err := store.Save(context.Background(), "tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got, err := mr.Get("frontend:currentUser"); err != nil || got != "tok" {
		t.Fatalf("expected prefixed key, got %q err=%v", got, err)
	}
}

func TestRedisTokenStoreUnavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisTokenStore(rdb, defaultConfig().Token)
	mr.Close()

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrTokenStoreUnavailable) {
		t.Fatalf("expected ErrTokenStoreUnavailable, got %v", err)
	}
	if err := store.Save(context.Background(), "tok"); !errors.Is(err, ErrTokenStoreUnavailable) {
		t.Fatalf("expected ErrTokenStoreUnavailable on Save, got %v", err)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrCredentialAbsent) {
		t.Fatalf("expected ErrCredentialAbsent, got %v", err)
	}

	if err := store.Save(ctx, "tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got, err := store.Load(ctx); err != nil || got != "tok" {
		t.Fatalf("expected tok, got %q err=%v", got, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrCredentialAbsent) {
		t.Fatalf("expected ErrCredentialAbsent after Clear, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

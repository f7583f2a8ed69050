package authfront

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the durable home of the credential artifact. It is read and
// written exclusively by the [SessionStore]; the middleware gate never sees
// it (the gate reads only the request cookie).
//
// Load returns [ErrCredentialAbsent] when no artifact is stored — a normal
// unauthenticated state, not a failure.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

/*
====================================
REDIS TOKEN STORE
====================================
*/

// RedisTokenStore persists the credential artifact under a single Redis key.
type RedisTokenStore struct {
	redis *redis.Client
	key   string
}

// NewRedisTokenStore creates a [RedisTokenStore] keyed by cfg.RedisPrefix
// and cfg.Key.
func NewRedisTokenStore(client *redis.Client, cfg TokenConfig) *RedisTokenStore {
	prefix := cfg.RedisPrefix
	if prefix == "" {
		prefix = "afs"
	}
	key := cfg.Key
	if key == "" {
		key = "currentUser"
	}
	return &RedisTokenStore{
		redis: client,
		key:   prefix + ":" + key,
	}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	value, err := s.redis.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", ErrCredentialAbsent
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenStoreUnavailable, err)
	}
	if value == "" {
		return "", ErrCredentialAbsent
	}
	return value, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.redis.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenStoreUnavailable, err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear is idempotent: clearing an absent artifact succeeds.
// Clear may return an error when input validation, dependency calls, or security checks fail.
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenStoreUnavailable, err)
	}
	return nil
}

/*
====================================
MEMORY TOKEN STORE
====================================
*/

// MemoryTokenStore is an in-process [TokenStore] for embedding and tests.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryTokenStore creates an empty [MemoryTokenStore].
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryTokenStore) Load(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return "", ErrCredentialAbsent
	}
	return s.token, nil
}

// Save describes the save operation and its observable behavior.
//
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear is idempotent: clearing an absent artifact succeeds.
func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

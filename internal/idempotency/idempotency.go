package idempotency

import (
	"context"
	"sync"
	"time"
)

const keyPrefix = "idempotency:"

// Store guards against a client submitting the same request twice
type Store interface {
	// Reserve claims key, returns false if it is already claimed
	Reserve(ctx context.Context, key string) (bool, error)

	// Release frees key so the request can be retried
	Release(ctx context.Context, key string) error
}

// MemoryStore keeps reservations in process memory until they expire
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[string]time.Time // key -> expiry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiry, ok := s.keys[keyPrefix+key]; ok && now.Before(expiry) {
		return false, nil
	}

	s.keys[keyPrefix+key] = now.Add(s.ttl)
	s.sweep(now)
	return true, nil
}

func (s *MemoryStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, keyPrefix+key)
	return nil
}

// sweep drops expired keys; caller holds mu
func (s *MemoryStore) sweep(now time.Time) {
	for k, expiry := range s.keys {
		if !now.Before(expiry) {
			delete(s.keys, k)
		}
	}
}

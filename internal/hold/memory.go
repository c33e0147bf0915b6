package hold

import (
	"context"
	"sync"
	"time"
)

// memoryStore is an in-process Store used when Redis is not configured
// (single-instance deployments, tests).
type memoryStore struct {
	mu    sync.Mutex
	locks map[string]time.Time // key -> expiry

	now func() time.Time
}

// NewMemoryStore creates an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{
		locks: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (s *memoryStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if expiry, held := s.locks[key]; held && expiry.After(now) {
		return false, nil
	}

	s.locks[key] = now.Add(ttl)
	return true, nil
}

func (s *memoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)
	return nil
}

// sweep drops expired holds. Callers must hold s.mu.
func (s *memoryStore) sweep(now time.Time) {
	for k, expiry := range s.locks {
		if !expiry.After(now) {
			delete(s.locks, k)
		}
	}
}

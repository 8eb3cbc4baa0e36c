package cache

import (
	"context"
	"sync"
	"time"

	"fantasy-war-room/internal/platform/resilience"
)

// Store is an in-memory TTL cache. Loads through GetOrLoad are deduplicated
// so a cold or expired key triggers at most one loader at a time.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   resilience.SingleFlight
	now     func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs load once and caches
// the result for ttl. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (any, error)) (any, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have filled the key while we queued.
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

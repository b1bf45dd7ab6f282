// Package cache provides explicit in-process TTL caches for derived
// computation results. Values are deterministic functions of the
// current store snapshot, so concurrent population of the same key is
// harmless duplicate work and last write wins; the mutex only protects
// the map structure itself.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Stats is a snapshot of a store's counters.
type Stats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a TTL-expiring key/value cache with a bounded entry count.
// All entries share the store's TTL; state transitions are only
// fresh -> stale -> evicted, by expiry or explicit invalidation.
type Store[V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int

	mu        sync.RWMutex
	items     map[string]entry[V]
	hits      int64
	misses    int64
	evictions int64
}

// NewStore creates a store. A non-positive maxEntries falls back to 1000.
func NewStore[V any](name string, ttl time.Duration, maxEntries int) *Store[V] {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Store[V]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		items:      make(map[string]entry[V]),
	}
}

// Name returns the store's name, used in metrics labels.
func (s *Store[V]) Name() string {
	return s.name
}

// Get returns the fresh value for key, if any.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		return e.value, true
	}

	s.mu.Lock()
	s.misses++
	if ok {
		delete(s.items, key)
	}
	s.mu.Unlock()

	var zero V
	return zero, false
}

// Set stores value under key with the store's TTL, evicting the
// soonest-expiring entry when the store is full.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists && len(s.items) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.items[key] = entry[V]{value: value, expiresAt: time.Now().Add(s.ttl)}
}

// Delete removes key.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// DeletePrefix removes every key with the given prefix and returns the
// number removed. Used for per-owner-scope invalidation.
func (s *Store[V]) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

// Purge removes every entry.
func (s *Store[V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]entry[V])
}

// Stats returns the store's counters.
func (s *Store[V]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Entries:   len(s.items),
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
	}
}

func (s *Store[V]) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, e := range s.items {
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(s.items, oldestKey)
		s.evictions++
	}
}

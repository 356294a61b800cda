package cache

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// MemoryStore keeps cache entries in memory. It is safe for concurrent use and
// satisfies backend.Cache.
type MemoryStore struct {
	enabled bool
	ttl     time.Duration

	mu      sync.RWMutex
	entries map[string]*CacheEntry
}

// NewMemoryStore returns a store whose entries live for ttl. A disabled store
// never holds anything.
func NewMemoryStore(enabled bool, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		enabled: enabled,
		ttl:     ttl,
		entries: map[string]*CacheEntry{},
	}
}

// Entry returns the entry for key with its metadata.
func (s *MemoryStore) Entry(key string) (*CacheEntry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCacheNotFound
	}
	if entry.IsExpired() {
		_ = s.Delete(key)
		return nil, ErrCacheExpired
	}
	return entry, nil
}

// Get returns the cached body for key if present and fresh.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	entry, err := s.Entry(key)
	if err != nil {
		return nil, false
	}
	return entry.Data, true
}

// Put stores data under key, replacing any previous entry.
func (s *MemoryStore) Put(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	buf := make(json.RawMessage, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropExpired()
	s.entries[key] = NewCacheEntry(key, buf, s.ttl)
	return nil
}

// Set is Put without the error, for backend.Cache.
func (s *MemoryStore) Set(key string, data []byte) {
	_ = s.Put(key, data)
}

// Delete removes key. Missing keys are not an error.
func (s *MemoryStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]*CacheEntry{}
}

// dropExpired removes expired entries. Callers hold s.mu.
func (s *MemoryStore) dropExpired() {
	for k, e := range s.entries {
		if e.IsExpired() {
			delete(s.entries, k)
		}
	}
}

// TTL returns the lifetime given to new entries.
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

package cache

import (
	"encoding/json"
	"time"
)

// CacheEntry is one cached response body with TTL metadata.
//
//nolint:revive // CacheEntry is the canonical name for this exported type.
type CacheEntry struct {
	// Key is the absolute request URL.
	Key string `json:"key"`

	// Data is the raw JSON response body.
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// TTL is the lifetime the entry was created with.
	TTL time.Duration `json:"ttl"`
}

// NewCacheEntry creates an entry expiring ttl from now.
func NewCacheEntry(key string, data json.RawMessage, ttl time.Duration) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		TTL:       ttl,
	}
}

// IsExpired reports whether the entry is past its expiration time.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid is the inverse of IsExpired.
func (e *CacheEntry) IsValid() bool {
	return !e.IsExpired()
}

// Age returns the duration since the entry was created.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *CacheEntry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

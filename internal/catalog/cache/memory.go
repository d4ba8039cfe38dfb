package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a bounded in-process LRU cache.
// Entries also carry their own TTL so per-Set lifetimes are honoured.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
}

// NewMemoryCache creates an LRU holding at most size entries, none older than maxTTL.
func NewMemoryCache(size int, maxTTL time.Duration) *MemoryCache {
	if size <= 0 {
		size = 256
	}
	return &MemoryCache{lru: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.data, true
}

func (c *MemoryCache) Set(key string, data []byte, ttl time.Duration) error {
	c.lru.Add(key, memoryEntry{data: data, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (c *MemoryCache) Clear() error {
	c.lru.Purge()
	return nil
}

func (c *MemoryCache) Close() error { return nil }

// Len reports the number of live entries.
func (c *MemoryCache) Len() int { return c.lru.Len() }

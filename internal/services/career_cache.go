package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// TTLCache is a process-local, time-expiring cache. Values are stored as JSON
// so both Set and Get hand out deep copies; a cached result can never be
// mutated through an alias. Expired entries are evicted lazily on lookup.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return NewTTLCacheWithClock(ttl, time.Now)
}

// NewTTLCacheWithClock injects the time source, which keeps expiry testable.
func NewTTLCacheWithClock(ttl time.Duration, now func() time.Time) *TTLCache {
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get unmarshals the cached value into dst and reports whether a live entry
// existed. dst is untouched on a miss.
func (c *TTLCache) Get(key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return false
	}
	if err := json.Unmarshal(entry.payload, dst); err != nil {
		return false
	}
	return true
}

// Set stores value under key. Serialization failures are swallowed; the cache
// is best-effort and must never fail a request.
func (c *TTLCache) Set(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{payload: payload, expiresAt: c.now().Add(c.ttl)}
}

func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StableKey derives a canonical serialization of v: object keys are sorted
// recursively, arrays keep their order, bare primitives stringify directly
// and nil maps to the empty string. Semantically identical requests collide
// regardless of property order.
func StableKey(v any) string {
	if v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		var b strings.Builder
		writeCanonical(&b, v)
		return b.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			b.Write(kb)
			b.WriteByte(':')
			writeCanonical(b, t[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, elem := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, elem)
		}
		b.WriteByte(']')
	default:
		eb, err := json.Marshal(t)
		if err != nil {
			eb, _ = json.Marshal(fmt.Sprintf("%v", t))
		}
		b.Write(eb)
	}
}

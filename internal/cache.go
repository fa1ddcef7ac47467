package internal

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheManager is a bounded LRU of decoded documents keyed by a hash of
// their source. A disabled manager (size <= 0) misses every lookup.
type CacheManager struct {
	entries *lru.Cache[uint64, cacheEntry]
	maxSize int

	hitCount  atomic.Int64
	missCount atomic.Int64
}

// cacheEntry keeps the source next to the value so a hash collision is a
// miss instead of a wrong result.
type cacheEntry struct {
	namespace string
	source    string
	value     any
}

// NewCacheManager creates a cache holding at most maxSize entries
func NewCacheManager(maxSize int) *CacheManager {
	cm := &CacheManager{maxSize: maxSize}
	if maxSize <= 0 {
		return cm
	}
	entries, err := lru.New[uint64, cacheEntry](maxSize)
	if err != nil {
		return cm
	}
	cm.entries = entries
	return cm
}

// Enabled reports whether the cache stores anything
func (cm *CacheManager) Enabled() bool {
	return cm != nil && cm.entries != nil
}

// HashKey derives the cache key for source within namespace
func HashKey(namespace, source string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(namespace)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(source)
	return d.Sum64()
}

// Get returns the value cached for source
func (cm *CacheManager) Get(namespace, source string) (any, bool) {
	if !cm.Enabled() {
		return nil, false
	}
	entry, ok := cm.entries.Get(HashKey(namespace, source))
	if !ok || entry.namespace != namespace || entry.source != source {
		cm.missCount.Add(1)
		return nil, false
	}
	cm.hitCount.Add(1)
	return entry.value, true
}

// Set caches value for source, evicting the least recently used entry
// when full.
func (cm *CacheManager) Set(namespace, source string, value any) {
	if !cm.Enabled() {
		return
	}
	cm.entries.Add(HashKey(namespace, source), cacheEntry{namespace: namespace, source: source, value: value})
}

// Len returns the number of cached entries
func (cm *CacheManager) Len() int {
	if !cm.Enabled() {
		return 0
	}
	return cm.entries.Len()
}

// MaxSize returns the configured capacity
func (cm *CacheManager) MaxSize() int {
	if cm == nil {
		return 0
	}
	return cm.maxSize
}

// Stats returns the hit and miss counters
func (cm *CacheManager) Stats() (hits, misses int64) {
	if cm == nil {
		return 0, 0
	}
	return cm.hitCount.Load(), cm.missCount.Load()
}

// Clear drops every entry and resets the counters
func (cm *CacheManager) Clear() {
	if cm == nil {
		return
	}
	if cm.entries != nil {
		cm.entries.Purge()
	}
	cm.hitCount.Store(0)
	cm.missCount.Store(0)
}

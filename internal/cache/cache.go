package cache

import (
	"sync"

	"github.com/outofoffice3/config-recorder-override/internal/shared"
)

// Cache interface for storing and retrieving exclusion config documents.
type Cache interface {
	Set(key CacheKey, value shared.ExclusionConfig)
	Get(key CacheKey) (shared.ExclusionConfig, bool)
	Delete(key CacheKey)
}

// memoryCache implements the Cache interface using sync.Map.
type memoryCache struct {
	store sync.Map
}

// CacheKey identifies a document by bucket (PK) and object key (SK).
type CacheKey struct {
	PK string
	SK string
}

func (ck CacheKey) String() string {
	return ck.PK + "||" + ck.SK
}

// NewCache creates a new instance of a Cache using memoryCache.
func NewCache() Cache {
	return &memoryCache{}
}

// Set stores a key-value pair in the cache.
func (c *memoryCache) Set(key CacheKey, value shared.ExclusionConfig) {
	accounts := make([]string, len(value.ExcludedAccounts))
	copy(accounts, value.ExcludedAccounts)
	c.store.Store(key.String(), shared.ExclusionConfig{ExcludedAccounts: accounts})
}

// Get retrieves a value from the cache based on its key.
func (c *memoryCache) Get(key CacheKey) (shared.ExclusionConfig, bool) {
	result, exists := c.store.Load(key.String())
	if !exists {
		return shared.ExclusionConfig{}, false
	}
	return result.(shared.ExclusionConfig), true
}

// Delete drops a key from the cache.
func (c *memoryCache) Delete(key CacheKey) {
	c.store.Delete(key.String())
}

package cache

import (
	"strconv"
	"sync"
	"testing"

	"github.com/outofoffice3/config-recorder-override/internal/shared"
	"github.com/stretchr/testify/assert"
)

// TestCacheSetAndGet tests the Set and Get methods of the cache
func TestCacheSetAndGet(t *testing.T) {
	assertion := assert.New(t)
	c := NewCache()
	result := shared.ExclusionConfig{
		ExcludedAccounts: []string{"111111111111", "222222222222"},
	}

	testKey := CacheKey{
		PK: "smt-config-recorder",
		SK: "config/params-config-recorder.json",
	}
	c.Set(testKey, result)
	gotResult, exists := c.Get(testKey)

	assertion.True(exists)
	assertion.Equal(result, gotResult)

	// stored value does not alias the caller's slice
	result.ExcludedAccounts[0] = "333333333333"
	gotResult, _ = c.Get(testKey)
	assertion.Equal("111111111111", gotResult.ExcludedAccounts[0])

	c.Delete(testKey)
	_, exists = c.Get(testKey)
	assertion.False(exists)
}

// TestCacheGetNonExistingKey tests retrieving a non-existing key from the cache
func TestCacheGetNonExistingKey(t *testing.T) {
	assertion := assert.New(t)
	c := NewCache()
	nonExistentKey := CacheKey{
		PK: "nonExistingPK",
		SK: "nonExistingSk",
	}
	_, exists := c.Get(nonExistentKey)
	assertion.False(exists)
}

// TestCacheConcurrentAccess tests concurrent access to the cache
func TestCacheConcurrentAccess(t *testing.T) {
	assertion := assert.New(t)
	c := NewCache()
	wg := sync.WaitGroup{}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			key := CacheKey{PK: "bucket", SK: "key" + strconv.Itoa(val)}
			result := shared.ExclusionConfig{
				ExcludedAccounts: []string{strconv.Itoa(val)},
			}
			c.Set(key, result)
			gotResult, _ := c.Get(key)
			assertion.Equal(result, gotResult)
		}(i)
	}

	wg.Wait()
}

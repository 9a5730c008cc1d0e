package acquire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchCache_BasicGetPut(t *testing.T) {
	c := newFetchCache(3)

	c.put("a", 1.5)
	c.put("b", 2.5)

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestFetchCache_Eviction(t *testing.T) {
	c := newFetchCache(2)

	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestFetchCache_AccessPromotesEntry(t *testing.T) {
	c := newFetchCache(2)

	c.put("a", 1)
	c.put("b", 2)

	c.get("a")

	c.put("c", 3) // evicts "b", not the recently used "a"

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestFetchCache_UpdateExisting(t *testing.T) {
	c := newFetchCache(2)

	c.put("a", 1)
	c.put("a", 9)

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestFetchCacheKey(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "MERRA2_400|T2M|20250601", fetchCacheKey("MERRA2_400", "T2M", date))
}

package acquire

import (
	"fmt"
	"sync"
	"time"
)

// fetchCache is a thread-safe LRU cache of successful real fetches, keyed by
// (product, variable, date). It lives for the session of one Manager: capped
// entries, cleared only by discarding the Manager.
type fetchCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	key   string
	value float64
	prev  *cacheEntry
	next  *cacheEntry
}

func newFetchCache(maxEntries int) *fetchCache {
	return &fetchCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func fetchCacheKey(product, variable string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", product, variable, date.Format("20060102"))
}

func (c *fetchCache) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *fetchCache) put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *fetchCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *fetchCache) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *fetchCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *fetchCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

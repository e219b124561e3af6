package monitor

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed-size ring of recently broadcast payloads, indexed
// by hash so a repeated payload can be sent as its index alone.
type cache struct {
	cache []*cacheEntry
	idx   int
	size  int
	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]*cacheEntry, size),
		size:  size,
	}
}

func (c *cache) add(hash uint64, output []byte) int {
	i := c.idx
	c.cache[i] = &cacheEntry{hash: hash, data: output}
	c.idx = (c.idx + 1) % c.size
	return i
}

func (c *cache) index(hash uint64) int {
	for i, e := range c.cache {
		if e != nil && e.hash == hash {
			return i
		}
	}

	return -1
}

// sync encodes every cached entry as (length, index, data) records.
func (c *cache) sync() []byte {
	var data []byte
	for i, e := range c.cache {
		if e == nil {
			continue
		}
		data = append(data, byte(len(e.data)), byte(len(e.data)>>8), byte(i), byte(i>>8))
		data = append(data, e.data...)
	}
	return data
}

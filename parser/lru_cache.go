package parser

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultCacheSize = 1000
	maxShards        = 64
	entriesPerShard  = 250
)

// CacheStats is a snapshot of template cache activity.
type CacheStats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
	Size        int
	MaxSize     int
}

// CacheOption configures a TemplateCache.
type CacheOption func(*TemplateCache)

// WithMaxSize bounds the number of cached templates.
func WithMaxSize(size int) CacheOption {
	return func(c *TemplateCache) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithTTL expires templates that have not been stored for ttl.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *TemplateCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

type cacheEntry struct {
	template string
	parsed   *MessageTemplate
	element  *list.Element
	expires  time.Time
}

// cacheShard is one independently locked LRU list.
type cacheShard struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	order    *list.List
	capacity int
}

func (s *cacheShard) remove(entry *cacheEntry) {
	delete(s.entries, entry.template)
	s.order.Remove(entry.element)
}

// TemplateCache is a bounded, sharded LRU cache of parsed templates, safe
// for concurrent use. The least recently used template of a full shard is
// evicted on insert.
type TemplateCache struct {
	shards  []*cacheShard
	mask    uint32
	maxSize int
	ttl     time.Duration

	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTemplateCache returns an empty cache holding at most 1000 templates
// unless configured otherwise.
func NewTemplateCache(opts ...CacheOption) *TemplateCache {
	c := &TemplateCache{maxSize: defaultCacheSize}
	for _, opt := range opts {
		opt(c)
	}

	// A power of two so a shard is picked by masking the hash.
	shards := 1
	for shards*2 <= maxShards && shards*2 <= max(1, c.maxSize/entriesPerShard) {
		shards *= 2
	}
	c.shards = make([]*cacheShard, shards)
	c.mask = uint32(shards - 1)

	// Spread the capacity exactly so the shards sum to maxSize.
	for i := range c.shards {
		capacity := c.maxSize / shards
		if i < c.maxSize%shards {
			capacity++
		}
		c.shards[i] = &cacheShard{
			entries:  make(map[string]*cacheEntry),
			order:    list.New(),
			capacity: capacity,
		}
	}

	if c.ttl > 0 {
		c.stop = make(chan struct{})
		go c.expireLoop()
	}
	return c
}

// shard hashes template with FNV-1a followed by a murmur3 finalizer.
func (c *TemplateCache) shard(template string) *cacheShard {
	h := uint32(2166136261)
	for i := 0; i < len(template); i++ {
		h ^= uint32(template[i])
		h *= 16777619
	}
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return c.shards[h&c.mask]
}

// Get returns the cached template and marks it most recently used.
func (c *TemplateCache) Get(template string) (*MessageTemplate, bool) {
	s := c.shard(template)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[template]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		s.remove(entry)
		c.expirations.Add(1)
		c.misses.Add(1)
		return nil, false
	}
	s.order.MoveToFront(entry.element)
	c.hits.Add(1)
	return entry.parsed, true
}

// Put stores parsed under template, evicting the least recently used
// template when the shard is full.
func (c *TemplateCache) Put(template string, parsed *MessageTemplate) {
	s := c.shard(template)
	s.mu.Lock()
	defer s.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = time.Now().Add(c.ttl)
	}

	if entry, ok := s.entries[template]; ok {
		entry.parsed = parsed
		entry.expires = expires
		s.order.MoveToFront(entry.element)
		return
	}

	if len(s.entries) >= s.capacity {
		if oldest := s.order.Back(); oldest != nil {
			s.remove(oldest.Value.(*cacheEntry))
			c.evictions.Add(1)
		}
	}

	entry := &cacheEntry{template: template, parsed: parsed, expires: expires}
	entry.element = s.order.PushFront(entry)
	s.entries[template] = entry
}

// Delete removes template, reporting whether it was cached.
func (c *TemplateCache) Delete(template string) bool {
	s := c.shard(template)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[template]
	if ok {
		s.remove(entry)
	}
	return ok
}

// Stats returns the current counters and size.
func (c *TemplateCache) Stats() CacheStats {
	size := 0
	for _, s := range c.shards {
		s.mu.Lock()
		size += len(s.entries)
		s.mu.Unlock()
	}
	return CacheStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Size:        size,
		MaxSize:     c.maxSize,
	}
}

// Clear empties the cache and resets its counters.
func (c *TemplateCache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]*cacheEntry)
		s.order.Init()
		s.mu.Unlock()
	}
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.expirations.Store(0)
}

// Close stops the expiry goroutine started for caches with a TTL.
func (c *TemplateCache) Close() {
	c.stopOnce.Do(func() {
		if c.stop != nil {
			close(c.stop)
		}
	})
}

func (c *TemplateCache) expireLoop() {
	ticker := time.NewTicker(min(c.ttl, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.expire(time.Now())
		case <-c.stop:
			return
		}
	}
}

// expire drops expired templates from every shard.
func (c *TemplateCache) expire(now time.Time) {
	for _, s := range c.shards {
		s.mu.Lock()
		for e := s.order.Back(); e != nil; {
			prev := e.Prev()
			if entry := e.Value.(*cacheEntry); !entry.expires.IsZero() && !entry.expires.After(now) {
				s.remove(entry)
				c.expirations.Add(1)
			}
			e = prev
		}
		s.mu.Unlock()
	}
}

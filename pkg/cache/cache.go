package cache

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/recognarr/recognarr/pkg/episode"
)

const (
	DefaultCapacity = 10_000
	DefaultTTL      = 24 * time.Hour

	// An entry is hot when it was accessed at least hotAccessCount times or
	// within the last hotAccessWindow. Hot entries survive LRU eviction.
	hotAccessCount  = 3
	hotAccessWindow = time.Minute

	// Eviction drains the cache down to this share of capacity.
	evictTargetRatio = 0.8
)

// Entry wraps a cached result with its access bookkeeping.
type Entry struct {
	Result      episode.MatchResult
	CreatedAt   time.Time
	LastAccess  time.Time
	AccessCount int64
}

func (e *Entry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) > ttl
}

func (e *Entry) hot(now time.Time) bool {
	return e.AccessCount >= hotAccessCount || now.Sub(e.LastAccess) <= hotAccessWindow
}

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Size      int   `json:"size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	HotHits   int64 `json:"hotHits"`
}

// ResultCache is a bounded, TTL-and-LRU-evicting store for recognition
// results, safe for concurrent use from multiple workers.
type ResultCache struct {
	mu       sync.RWMutex
	entries  map[string]*Entry
	capacity int
	ttl      time.Duration
	now      func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	hotHits   atomic.Int64
}

// Option configures a ResultCache.
type Option func(*ResultCache)

func WithCapacity(capacity int) Option {
	return func(c *ResultCache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ResultCache) {
		c.now = now
	}
}

func New(opts ...Option) *ResultCache {
	c := &ResultCache{
		entries:  make(map[string]*Entry),
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached result for key. Entries past their TTL are removed
// on the spot and reported as misses.
func (c *ResultCache) Get(key string) (episode.MatchResult, bool) {
	now := c.now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		return episode.MatchResult{}, false
	}
	if e.expired(now, c.ttl) {
		delete(c.entries, key)
		c.mu.Unlock()
		c.misses.Add(1)
		return episode.MatchResult{}, false
	}

	e.AccessCount++
	// judge hotness on the access history before this hit, otherwise every
	// hit would fall inside the access window
	hot := e.AccessCount >= hotAccessCount || now.Sub(e.LastAccess) <= hotAccessWindow
	e.LastAccess = now
	res := e.Result
	c.mu.Unlock()

	c.hits.Add(1)
	if hot {
		c.hotHits.Add(1)
	}
	return res, true
}

// Put stores a result, triggering an eviction sweep when the capacity is
// exceeded.
func (c *ResultCache) Put(key string, result episode.MatchResult) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Result:     result,
		CreatedAt:  now,
		LastAccess: now,
	}

	if len(c.entries) > c.capacity {
		c.evictLocked(now)
	}
}

// evictLocked removes the least-recently-used entries until the cache is at
// the target size. Hot entries sort to the end and are never removed by this
// pass even when the target cannot be reached.
func (c *ResultCache) evictLocked(now time.Time) {
	target := int(float64(c.capacity) * evictTargetRatio)

	type kv struct {
		key   string
		entry *Entry
	}
	snapshot := make([]kv, 0, len(c.entries))
	for k, e := range c.entries {
		snapshot = append(snapshot, kv{k, e})
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		hi, hj := snapshot[i].entry.hot(now), snapshot[j].entry.hot(now)
		if hi != hj {
			return !hi
		}
		return snapshot[i].entry.LastAccess.Before(snapshot[j].entry.LastAccess)
	})

	for _, it := range snapshot {
		if len(c.entries) <= target {
			break
		}
		if it.entry.hot(now) {
			break
		}
		delete(c.entries, it.key)
		c.evictions.Add(1)
	}
}

// Clear removes every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// ClearAI removes only entries produced by the AI and hybrid stages, leaving
// plain filename-detection entries intact.
func (c *ResultCache) ClearAI() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, PrefixAI+":") || strings.HasPrefix(k, PrefixHybrid+":") {
			delete(c.entries, k)
		}
	}
}

// ResetStatistics zeroes the counters without touching the entries.
func (c *ResultCache) ResetStatistics() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.hotHits.Store(0)
}

func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResultCache) HitCount() int64 { return c.hits.Load() }

func (c *ResultCache) MissCount() int64 { return c.misses.Load() }

func (c *ResultCache) EvictionCount() int64 { return c.evictions.Load() }

func (c *ResultCache) HotHitCount() int64 { return c.hotHits.Load() }

// Statistics returns a snapshot of all counters plus the current size.
func (c *ResultCache) Statistics() Stats {
	return Stats{
		Size:      c.Size(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		HotHits:   c.hotHits.Load(),
	}
}

// Package query provides the read-side cache for API list and get
// calls. Results are cached per (endpoint, parameters) key and
// considered fresh for a fixed window; identical reads issued while one
// is already in flight are de-duplicated onto the same network call.
// Mutations invalidate by endpoint prefix.
package query

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshFor is how long a cached result is served without refetching.
const DefaultFreshFor = 5 * time.Minute

// Cache is a read-through cache with single-flight de-duplication.
type Cache struct {
	freshFor time.Duration
	group    singleflight.Group

	mu      sync.Mutex
	entries map[uint64]entry

	hits   prometheus.Counter
	misses prometheus.Counter
}

type entry struct {
	endpoint  string
	value     any
	fetchedAt time.Time
}

// CacheOption is a functional option for configuring a Cache.
type CacheOption func(*Cache)

// WithFreshFor overrides the freshness window.
func WithFreshFor(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.freshFor = d
	}
}

// WithCounters sets the hit and miss counters. Without them, nothing is
// recorded.
func WithCounters(hits, misses prometheus.Counter) CacheOption {
	return func(c *Cache) {
		c.hits = hits
		c.misses = misses
	}
}

// NewCache creates a Cache with the default five-minute freshness window.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		freshFor: DefaultFreshFor,
		entries:  make(map[uint64]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do returns the cached value for (endpoint, params) when fresh,
// otherwise fetches it. Concurrent calls for the same key while a fetch
// is in flight share that fetch's result. Errors are never cached.
func (c *Cache) Do(ctx context.Context, endpoint string, params map[string]string, fetch func(context.Context) (any, error)) (any, error) {
	key := Key(endpoint, params)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.freshFor {
		c.mu.Unlock()
		if c.hits != nil {
			c.hits.Inc()
		}
		return e.value, nil
	}
	c.mu.Unlock()

	if c.misses != nil {
		c.misses.Inc()
	}

	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{endpoint: endpoint, value: value, fetchedAt: time.Now()}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops every cached entry whose endpoint starts with prefix.
// Called after a mutation so the next read observes the write.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(e.endpoint, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fetch is the typed wrapper over Do.
func Fetch[T any](ctx context.Context, c *Cache, endpoint string, params map[string]string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := c.Do(ctx, endpoint, params, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Key hashes an endpoint and its parameters into a cache key.
// Parameters are sorted so map iteration order cannot split entries.
func Key(endpoint string, params map[string]string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(endpoint)
	_, _ = h.Write([]byte{0}) // separator

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(params[name])
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

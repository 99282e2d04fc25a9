package lru

import (
	"time"

	"github.com/karlseguin/ccache/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// promote an item to the front of the list after it was read this many times
const getsPerPromote = 64

// prune 1/16 of the entries once the cache is full
const itemsToPruneDiv = 16

// Cache is a bounded ccache that reports its size and hit ratio to prometheus.
type Cache struct {
	op            string
	ttl           time.Duration
	cache         *ccache.Cache
	cachedEntries *prometheus.GaugeVec
	requests      *prometheus.CounterVec
}

// New creates an LRU cache holding at most maxEntries items for ttl each.
// op is used as the metrics label.
func New(op string, maxEntries int64, ttl time.Duration, cachedEntries *prometheus.GaugeVec, requests *prometheus.CounterVec) *Cache {
	configuration := ccache.Configure()
	configuration.MaxSize(maxEntries)
	configuration.ItemsToPrune(uint32(maxEntries) / itemsToPruneDiv)
	configuration.GetsPerPromote(getsPerPromote)
	configuration.OnDelete(func(*ccache.Item) {
		cachedEntries.WithLabelValues(op).Dec()
	})

	return &Cache{
		op:            op,
		ttl:           ttl,
		cache:         ccache.New(configuration),
		cachedEntries: cachedEntries,
		requests:      requests,
	}
}

// FindOrFetch returns the live item stored under key, or calls fetchFn and
// stores its result. Errors from fetchFn are not cached.
func (c *Cache) FindOrFetch(key string, fetchFn func() (interface{}, error)) (interface{}, error) {
	item := c.cache.Get(key)

	if item != nil && !item.Expired() {
		c.requests.WithLabelValues(c.op, "hit").Inc()
		return item.Value(), nil
	}

	value, err := fetchFn()
	if err != nil {
		c.requests.WithLabelValues(c.op, "error").Inc()
		return nil, err
	}

	c.requests.WithLabelValues(c.op, "miss").Inc()
	c.cachedEntries.WithLabelValues(c.op).Inc()

	c.cache.Set(key, value, c.ttl)

	return value, nil
}

// Stop shuts down the background goroutine owned by ccache.
func (c *Cache) Stop() {
	c.cache.Stop()
}

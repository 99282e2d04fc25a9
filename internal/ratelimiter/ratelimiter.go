package ratelimiter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"gitlab.com/forked-pages/forked-pages/internal/lru"
	"gitlab.com/forked-pages/forked-pages/metrics"
)

const (
	// DefaultSourceIPBurstSize is the number of requests a client may send at once
	// before the per second limit applies.
	DefaultSourceIPBurstSize = 100

	defaultSourceIPItems              = 5000
	defaultSourceIPExpirationInterval = time.Minute
)

// Option function to configure a RateLimiter
type Option func(*RateLimiter)

// RateLimiter keeps a token bucket per source IP in an LRU cache.
// The now function can be replaced in tests.
type RateLimiter struct {
	now                    func() time.Time
	sourceIPLimitPerSecond float64
	sourceIPBurstSize      int
	sourceIPBlockedCount   prometheus.Counter
	sourceIPCache          *lru.Cache
}

// New creates a new RateLimiter. The limit must be set with WithSourceIPLimitPerSecond.
func New(opts ...Option) *RateLimiter {
	rl := &RateLimiter{
		now:                  time.Now,
		sourceIPBurstSize:    DefaultSourceIPBurstSize,
		sourceIPBlockedCount: metrics.RateLimitSourceIPBlockedCount,
		sourceIPCache: lru.New(
			"source_ip",
			defaultSourceIPItems,
			defaultSourceIPExpirationInterval,
			metrics.RateLimitSourceIPCachedEntries,
			metrics.RateLimitSourceIPCacheRequests,
		),
	}

	for _, opt := range opts {
		opt(rl)
	}

	return rl
}

// WithNow replaces the RateLimiter now function
func WithNow(now func() time.Time) Option {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// WithSourceIPLimitPerSecond sets how many requests per second a single client may send
func WithSourceIPLimitPerSecond(limit float64) Option {
	return func(rl *RateLimiter) {
		rl.sourceIPLimitPerSecond = limit
	}
}

// WithSourceIPBurstSize configures burst per source IP for the RateLimiter
func WithSourceIPBurstSize(burst int) Option {
	return func(rl *RateLimiter) {
		rl.sourceIPBurstSize = burst
	}
}

func (rl *RateLimiter) getSourceIPLimiter(sourceIP string) *rate.Limiter {
	limiterI, _ := rl.sourceIPCache.FindOrFetch(sourceIP, func() (interface{}, error) {
		return rate.NewLimiter(rate.Limit(rl.sourceIPLimitPerSecond), rl.sourceIPBurstSize), nil
	})

	return limiterI.(*rate.Limiter)
}

// SourceIPAllowed checks that the remote IP address may perform another request
func (rl *RateLimiter) SourceIPAllowed(sourceIP string) bool {
	limiter := rl.getSourceIPLimiter(sourceIP)

	// AllowN takes the time explicitly so tests can freeze the clock
	return limiter.AllowN(rl.now(), 1)
}

// Stop releases the cache goroutine
func (rl *RateLimiter) Stop() {
	rl.sourceIPCache.Stop()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts every request answered, including redirects and rejections
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forked_pages_http_requests_total",
		Help: "Total number of HTTP requests answered by the server",
	}, []string{"code", "method"})

	// HTTPRequestDuration observes how long a response takes to be written
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forked_pages_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method"})

	// HTTPInFlight is the number of requests currently being served
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forked_pages_http_in_flight_requests",
		Help: "The number of requests currently being served",
	})

	// VFSOperations counts file system calls made while serving files
	VFSOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forked_pages_vfs_operations_total",
		Help: "The number of file system operations",
	}, []string{"operation", "result"})

	// ServedFileSize observes the size of files opened for serving
	ServedFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "forked_pages_served_file_size_bytes",
		Help:    "The size in bytes of files opened for serving",
		Buckets: prometheus.ExponentialBuckets(512, 4, 10),
	})

	// LimitListenerMaxConns is the maximum number of connections accepted at once
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forked_pages_limit_listener_max_conns",
		Help: "The maximum number of concurrent connections allowed by the limit listener",
	})

	// LimitListenerConcurrentConns is the number of connections currently holding a slot
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forked_pages_limit_listener_concurrent_conns",
		Help: "The number of connections currently served by the limit listener",
	})

	// LimitListenerWaitingConns is the number of connections waiting for a slot
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forked_pages_limit_listener_waiting_conns",
		Help: "The number of connections waiting for a free slot in the limit listener",
	})

	// RejectedRequests counts requests refused before reaching the file
	// handler, by reason
	RejectedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forked_pages_rejected_requests_total",
		Help: "The number of requests rejected by the request filters",
	}, []string{"reason"})

	// RateLimitSourceIPBlockedCount counts requests rejected with 429
	RateLimitSourceIPBlockedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "forked_pages_rate_limit_source_ip_blocked_count",
		Help: "The number of requests blocked by the source IP rate limiter",
	})

	// RateLimitSourceIPCachedEntries is the number of source IPs tracked by the rate limiter
	RateLimitSourceIPCachedEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "forked_pages_rate_limit_source_ip_cached_entries",
		Help: "The number of entries in the source IP rate limiter cache",
	}, []string{"op"})

	// RateLimitSourceIPCacheRequests counts source IP cache lookups by result
	RateLimitSourceIPCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forked_pages_rate_limit_source_ip_cache_requests",
		Help: "The number of source IP rate limiter cache hits and misses",
	}, []string{"op", "cache"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPInFlight)
	prometheus.MustRegister(VFSOperations)
	prometheus.MustRegister(ServedFileSize)
	prometheus.MustRegister(LimitListenerMaxConns)
	prometheus.MustRegister(LimitListenerConcurrentConns)
	prometheus.MustRegister(LimitListenerWaitingConns)
	prometheus.MustRegister(RejectedRequests)
	prometheus.MustRegister(RateLimitSourceIPBlockedCount)
	prometheus.MustRegister(RateLimitSourceIPCachedEntries)
	prometheus.MustRegister(RateLimitSourceIPCacheRequests)
}

package ratelimiter

import (
	"net/http"

	"gitlab.com/forked-pages/forked-pages/internal/httperrors"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
	"gitlab.com/forked-pages/forked-pages/internal/request"
)

// SourceIPLimiter returns middleware answering 429 to clients that exceed their budget
func (rl *RateLimiter) SourceIPLimiter(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sourceIP := request.GetRemoteAddrWithoutPort(r)
		if !rl.SourceIPAllowed(sourceIP) {
			logging.LogRequest(r).WithFields(map[string]interface{}{
				"handler":                       "source_ip_rate_limiter",
				"source_ip":                     sourceIP,
				"rate_limiter_limit_per_second": rl.sourceIPLimitPerSecond,
				"rate_limiter_burst_size":       rl.sourceIPBurstSize,
			}).Debug("source IP hit rate limit")

			rl.sourceIPBlockedCount.Inc()
			httperrors.Serve429(w)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

package urilimiter

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"gitlab.com/forked-pages/forked-pages/internal/httperrors"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
	"gitlab.com/forked-pages/forked-pages/metrics"
)

// RejectReason labels requests refused for their length in
// metrics.RejectedRequests
const RejectReason = "uri_too_long"

// NewMiddleware refuses requests whose target is longer than maxLength bytes.
// The length is taken from the request line as sent, so the query string and
// any percent-encoding count. A maxLength of 0 disables the check.
func NewMiddleware(handler http.Handler, maxLength int) http.Handler {
	if maxLength <= 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		length := len(r.RequestURI)
		if length <= maxLength {
			handler.ServeHTTP(w, r)
			return
		}

		metrics.RejectedRequests.WithLabelValues(RejectReason).Inc()
		logging.LogRequest(r).WithFields(log.Fields{
			"uri_length":     length,
			"max_uri_length": maxLength,
		}).Debug("request URI too long")

		httperrors.Serve414(w)
	})
}

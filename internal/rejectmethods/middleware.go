package rejectmethods

import (
	"net/http"

	"gitlab.com/forked-pages/forked-pages/internal/logging"
	"gitlab.com/forked-pages/forked-pages/metrics"
)

// RejectReason labels unknown methods in metrics.RejectedRequests
const RejectReason = "unknown_method"

// methods defined by RFC 7231 and RFC 5789, matched case sensitively
var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// NewMiddleware answers 405 to methods that are not standard HTTP methods.
// Standard methods pass through: GET and HEAD are served below /forked and
// the others get the file handler's 501.
func NewMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if knownMethods[r.Method] {
			handler.ServeHTTP(w, r)
			return
		}

		metrics.RejectedRequests.WithLabelValues(RejectReason).Inc()
		logging.LogRequest(r).WithField("method", r.Method).Debug("unknown request method")

		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

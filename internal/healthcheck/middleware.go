package healthcheck

import (
	"io"
	"net/http"
	"strconv"
)

const statusBody = "success\n"

// NewMiddleware answers requests for statusPath so supervisors can probe the
// server without reading files below /forked. An empty statusPath disables
// the check.
func NewMiddleware(handler http.Handler, statusPath string) http.Handler {
	if statusPath == "" {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != statusPath {
			handler.ServeHTTP(w, r)
			return
		}

		serveStatus(w, r)
	})
}

func serveStatus(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Cache-Control", "no-store")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(statusBody)))
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		io.WriteString(w, statusBody)
	}
}

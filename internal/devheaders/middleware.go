package devheaders

import (
	"net/http"
)

// NewMiddleware injects the development headers into every response right
// before its status line is written, so they win over anything set by the
// wrapped handler.
func NewMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(&responseWriter{ResponseWriter: w, path: r.URL.Path}, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	path        string
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		Inject(w.Header(), w.path)
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher
func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap is used by http.ResponseController
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

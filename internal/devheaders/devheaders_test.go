package devheaders

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInject(t *testing.T) {
	tests := map[string]struct {
		path         string
		cacheControl string
		pragma       string
		expires      string
	}{
		"javascript": {
			path:         "/forked/app.js",
			cacheControl: cacheControlStrict,
			pragma:       "no-cache",
			expires:      "0",
		},
		"html": {
			path:         "/forked/index.html",
			cacheControl: cacheControlStrict,
			pragma:       "no-cache",
			expires:      "0",
		},
		"css": {
			path:         "/forked/css/site.css",
			cacheControl: cacheControlStrict,
			pragma:       "no-cache",
			expires:      "0",
		},
		"image": {
			path:         "/forked/logo.png",
			cacheControl: cacheControlDefault,
		},
		"directory": {
			path:         "/forked/",
			cacheControl: cacheControlDefault,
		},
		"json_is_not_js": {
			path:         "/forked/app.json",
			cacheControl: cacheControlDefault,
		},
		"suffix_is_case_sensitive": {
			path:         "/forked/APP.JS",
			cacheControl: cacheControlDefault,
		},
		"root": {
			path:         "/",
			cacheControl: cacheControlDefault,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := http.Header{}
			Inject(h, tt.path)

			require.Equal(t, "/", h.Get("Service-Worker-Allowed"))
			require.Equal(t, []string{tt.cacheControl}, h.Values("Cache-Control"))
			require.Equal(t, tt.pragma, h.Get("Pragma"))
			require.Equal(t, tt.expires, h.Get("Expires"))
		})
	}
}

func TestReplaces(t *testing.T) {
	for _, name := range []string{"Cache-Control", "cache-control", "Pragma", "Expires", "service-worker-allowed"} {
		require.True(t, Replaces(name), name)
	}

	for _, name := range []string{"X-Frame-Options", "Content-Security-Policy", "Link", ""} {
		require.False(t, Replaces(name), name)
	}
}

func TestMiddlewareReplacesHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=3600")
		w.Header().Add("Service-Worker-Allowed", "/forked/")
		io.WriteString(w, "console.log(1)")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/sw.js", nil)
	NewMiddleware(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{cacheControlStrict}, w.Header().Values("Cache-Control"))
	require.Equal(t, []string{"/"}, w.Header().Values("Service-Worker-Allowed"))
	require.Equal(t, "console.log(1)", w.Body.String())
}

func TestMiddlewareOnExplicitStatus(t *testing.T) {
	tests := map[string]int{
		"redirect":  http.StatusMovedPermanently,
		"not_found": http.StatusNotFound,
		"no_body":   http.StatusNoContent,
	}

	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			NewMiddleware(handler).ServeHTTP(w, r)

			require.Equal(t, code, w.Code)
			require.Equal(t, "/", w.Header().Get("Service-Worker-Allowed"))
			require.Equal(t, cacheControlDefault, w.Header().Get("Cache-Control"))
		})
	}
}

func TestMiddlewareInjectsOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/", nil)
	NewMiddleware(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{cacheControlDefault}, w.Header().Values("Cache-Control"))
}

func TestMiddlewareFlush(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, http.NewResponseController(w).Flush())
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/index.html", nil)
	NewMiddleware(handler).ServeHTTP(w, r)

	require.True(t, w.Flushed)
	require.Equal(t, cacheControlStrict, w.Header().Get("Cache-Control"))
}

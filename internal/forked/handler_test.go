package forked

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/forked-pages/forked-pages/internal/httpfs"
	"gitlab.com/forked-pages/forked-pages/internal/testhelpers"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	root := testhelpers.TmpRoot(t, map[string]string{
		"index.html":          "<html>home</html>",
		"app.js":              "console.log('app')",
		"css/site.css":        "body {}",
		"img/logo.png":        "png",
		"manifest.json":       "{}",
		"docs/guide.html":     "<html>guide</html>",
		"nested/index.html":   "<html>nested</html>",
		"forked/ghost.html":   "<html>ghost</html>",
		"space dir/file.html": "<html>space</html>",
	})

	fs, err := httpfs.NewFileSystem(root)
	require.NoError(t, err)

	return NewHandler(httpfs.NewFileServer(fs))
}

func TestStripPrefix(t *testing.T) {
	tests := map[string]struct {
		path     string
		expected string
		ok       bool
	}{
		"prefix_without_slash": {path: "/forked", expected: "/", ok: true},
		"prefix_with_slash":    {path: "/forked/", expected: "/", ok: true},
		"file":                 {path: "/forked/app.js", expected: "/app.js", ok: true},
		"nested":               {path: "/forked/a/b/", expected: "/a/b/", ok: true},
		"double_slash":         {path: "/forked//x", expected: "//x", ok: true},
		"repeated_prefix":      {path: "/forked/forked/x", expected: "/forked/x", ok: true},
		"similar_prefix":       {path: "/forkedx", ok: false},
		"similar_prefix_dash":  {path: "/forked-pages/", ok: false},
		"other":                {path: "/other", ok: false},
		"root":                 {path: "/", ok: false},
		"empty":                {path: "", ok: false},
		"case_sensitive":       {path: "/Forked/", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := StripPrefix(tt.path)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestRootRedirectsToPrefix(t *testing.T) {
	handler := newTestHandler(t)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			testhelpers.AssertRedirectTo(t, handler, method, "/", RedirectLocation)
		})
	}

	t.Run("query_is_ignored", func(t *testing.T) {
		testhelpers.AssertRedirectTo(t, handler, http.MethodGet, "/?x=1", "/forked/")
	})

	t.Run("empty_path", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.URL.Path = ""

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusMovedPermanently, w.Code)
		require.Equal(t, "/forked/", w.Header().Get("Location"))
		require.Empty(t, w.Body.String())
	})
}

func TestServesFilesBelowPrefix(t *testing.T) {
	handler := newTestHandler(t)

	tests := map[string]struct {
		url         string
		body        string
		contentType string
	}{
		"index": {
			url:         "/forked/",
			body:        "<html>home</html>",
			contentType: "text/html; charset=utf-8",
		},
		"index_file": {
			url:         "/forked/index.html",
			body:        "<html>home</html>",
			contentType: "text/html; charset=utf-8",
		},
		"nested_index_file": {
			url:         "/forked/nested/index.html",
			body:        "<html>nested</html>",
			contentType: "text/html; charset=utf-8",
		},
		"prefix_without_slash": {
			url:         "/forked",
			body:        "<html>home</html>",
			contentType: "text/html; charset=utf-8",
		},
		"javascript": {
			url:  "/forked/app.js",
			body: "console.log('app')",
		},
		"css": {
			url:         "/forked/css/site.css",
			body:        "body {}",
			contentType: "text/css; charset=utf-8",
		},
		"nested_index": {
			url:         "/forked/nested/",
			body:        "<html>nested</html>",
			contentType: "text/html; charset=utf-8",
		},
		"repeated_prefix_is_a_directory": {
			url:  "/forked/forked/ghost.html",
			body: "<html>ghost</html>",
		},
		"escaped_path": {
			url:  "/forked/space%20dir/file.html",
			body: "<html>space</html>",
		},
		"query_string": {
			url:  "/forked/app.js?v=2",
			body: "console.log('app')",
		},
		// matching happens on the decoded path
		"percent_encoded_prefix": {
			url:  "/%66orked/app.js",
			body: "console.log('app')",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			handler.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code)
			require.Empty(t, w.Header().Get("Location"))
			require.Equal(t, tt.body, w.Body.String())
			if tt.contentType != "" {
				require.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHeadServesHeadersOnly(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodHead, "/forked/app.js", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "18", w.Header().Get("Content-Length"))
	require.Empty(t, w.Body.String())
}

func TestPathsOutsidePrefixAreNotServed(t *testing.T) {
	handler := newTestHandler(t)

	for _, url := range []string{
		"/index.html",
		"/app.js",
		"/forkedx",
		"/forked-pages/",
		"/Forked/",
		"/other/forked/",
	} {
		t.Run(url, func(t *testing.T) {
			testhelpers.AssertHTTP404(t, handler, http.MethodGet, url, NotServedMessage)
		})
	}
}

func TestMissingFileIsNotFound(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/missing.js", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotContains(t, w.Body.String(), NotServedMessage)
}

func TestDirectoryWithoutTrailingSlashRedirectsRelatively(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/nested", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusMovedPermanently, w.Code)
	require.Equal(t, "nested/", w.Header().Get("Location"))
}

func TestTraversalStaysInsideRoot(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/forked/", nil)
	r.URL.Path = "/forked/../../../etc/passwd"
	handler.ServeHTTP(w, r)

	require.NotEqual(t, http.StatusOK, w.Code)
}

func TestUnsupportedMethods(t *testing.T) {
	handler := newTestHandler(t)

	for _, method := range []string{
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
		http.MethodTrace,
	} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(method, "/forked/index.html", nil)
			handler.ServeHTTP(w, r)

			require.Equal(t, http.StatusNotImplemented, w.Code)
			require.Contains(t, w.Body.String(), "Unsupported method (&#39;"+method+"&#39;)")
		})
	}
}

func TestRequestIsNotModified(t *testing.T) {
	var seen string
	files := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
		io.WriteString(w, "ok")
	})

	r := httptest.NewRequest(http.MethodGet, "/forked/app.js", nil)
	NewHandler(files).ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, "/app.js", seen)
	require.Equal(t, "/forked/app.js", r.URL.Path)
}

func TestRawPathIsRewritten(t *testing.T) {
	var rawPath, escaped string
	files := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.RawPath
		escaped = r.URL.EscapedPath()
	})

	r := httptest.NewRequest(http.MethodGet, "/forked/a%2Fb.txt", nil)
	NewHandler(files).ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, "/a%2Fb.txt", rawPath)
	require.Equal(t, "/a%2Fb.txt", escaped)
}

package devheaders

import (
	"net/http"
	"strings"
)

const (
	headerServiceWorkerAllowed = "Service-Worker-Allowed"
	headerCacheControl         = "Cache-Control"
	headerPragma               = "Pragma"
	headerExpires              = "Expires"

	cacheControlStrict  = "no-store, no-cache, must-revalidate, max-age=0"
	cacheControlDefault = "no-cache"
)

// strictSuffixes are the file types a browser must always refetch while developing
var strictSuffixes = []string{".js", ".html", ".css"}

// Inject sets the development headers for a response to path. Existing
// values are replaced.
func Inject(h http.Header, path string) {
	h.Set(headerServiceWorkerAllowed, "/")

	if hasStrictSuffix(path) {
		h.Set(headerCacheControl, cacheControlStrict)
		h.Set(headerPragma, "no-cache")
		h.Set(headerExpires, "0")
		return
	}

	h.Set(headerCacheControl, cacheControlDefault)
}

// Replaces reports whether Inject may overwrite the header name on some
// responses. name is compared in canonical form.
func Replaces(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case headerServiceWorkerAllowed, headerCacheControl, headerPragma, headerExpires:
		return true
	default:
		return false
	}
}

func hasStrictSuffix(path string) bool {
	for _, suffix := range strictSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	return false
}

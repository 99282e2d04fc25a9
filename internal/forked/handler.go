package forked

import (
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/forked-pages/forked-pages/internal/config"
	"gitlab.com/forked-pages/forked-pages/internal/httperrors"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
	"gitlab.com/forked-pages/forked-pages/internal/request"
)

const (
	// RedirectLocation is where requests for the server root are sent
	RedirectLocation = config.Prefix + "/"

	// NotServedMessage is the body of the 404 answered outside of the prefix
	NotServedMessage = "Only " + config.Prefix + "/ path is served"
)

// NewHandler serves files below the /forked prefix. The root redirects to
// the prefix, paths inside it are passed to files with the prefix removed
// and everything else is answered with 404.
func NewHandler(files http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !request.IsFileRequest(r) {
			httperrors.Serve501UnsupportedMethod(w, r.Method)
			return
		}

		if r.URL.Path == "" || r.URL.Path == "/" {
			w.Header().Set("Location", RedirectLocation)
			w.WriteHeader(http.StatusMovedPermanently)
			return
		}

		p, ok := StripPrefix(r.URL.Path)
		if !ok {
			httperrors.Serve404WithMessage(w, NotServedMessage)
			return
		}

		logging.LogRequest(r).WithField("file_path", p).Trace("serving file")

		files.ServeHTTP(w, rewrite(r, p))
	})
}

// StripPrefix maps a request path to the path of the file below the served
// root. It returns false when the path lies outside the prefix.
func StripPrefix(path string) (string, bool) {
	switch {
	case path == config.Prefix:
		return "/", true
	case strings.HasPrefix(path, config.Prefix+"/"):
		// keeps the slash following the prefix
		return path[len(config.Prefix):], true
	default:
		return "", false
	}
}

// rewrite returns a shallow copy of r pointing at path. The original
// request is left untouched for the outer middlewares.
func rewrite(r *http.Request, path string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = path

	if rp, ok := StripPrefix(r.URL.RawPath); ok && r.URL.RawPath != "" {
		r2.URL.RawPath = rp
	} else {
		r2.URL.RawPath = ""
	}

	return r2
}

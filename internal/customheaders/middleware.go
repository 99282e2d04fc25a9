package customheaders

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"gitlab.com/forked-pages/forked-pages/internal/devheaders"
)

// NewMiddleware parses the -header values and adds them to every response.
// The development cache headers are injected closer to the files, so a
// configured Cache-Control, Pragma, Expires or Service-Worker-Allowed is
// overwritten; a warning is logged for each of those once at startup.
func NewMiddleware(handler http.Handler, values []string) (http.Handler, error) {
	headers, err := ParseHeaderString(values)
	if err != nil {
		return nil, err
	}

	if len(headers) == 0 {
		return handler, nil
	}

	for name := range headers {
		if devheaders.Replaces(name) {
			log.WithField("header", name).Warn("custom header is replaced by the development cache headers")
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddCustomHeaders(w, headers)

		handler.ServeHTTP(w, r)
	}), nil
}

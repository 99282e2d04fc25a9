package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"gitlab.com/forked-pages/forked-pages/internal/config"
)

// newCors allows any origin to read the files below /forked. Range is
// allowed for media seeking and Service-Worker-Allowed is exposed so a page
// on another origin can check the registration scope.
func newCors() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"Accept", "Content-Type", "Range"},
		ExposedHeaders: []string{"Service-Worker-Allowed", "Content-Range"},
	})
}

// CorsHandler wraps handler with the CORS policy unless
// -disable-cross-origin-requests is set
func CorsHandler(config *config.Config, handler http.Handler) http.Handler {
	if config.General.DisableCrossOriginRequests {
		return handler
	}

	return newCors().Handler(handler)
}

package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/forked-pages/forked-pages/metrics"
)

// Instrument records the number, duration and concurrency of the requests
// answered by handler
func Instrument(handler http.Handler) http.Handler {
	handler = promhttp.InstrumentHandlerCounter(metrics.HTTPRequestsTotal, handler)
	handler = promhttp.InstrumentHandlerDuration(metrics.HTTPRequestDuration, handler)

	return promhttp.InstrumentHandlerInFlight(metrics.HTTPInFlight, handler)
}

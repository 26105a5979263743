package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler exposing the metrics in the standard
// Prometheus exposition format, typically mounted at "/metrics".
func (vm *ValidationMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		vm.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

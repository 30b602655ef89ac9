package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Path is where the metrics are exposed.
const Path = "/metrics"

// Handler returns the http handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

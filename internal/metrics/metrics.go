// Package metrics exposes Prometheus collectors for configuration loading and
// the HTTP request boundary.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eugenenazirov/novel-shell/internal/assets"
)

var (
	// ConfigLoadTotal counts configuration load attempts by result.
	ConfigLoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novel_shell_config_load_total",
		Help: "Total number of configuration load attempts by result",
	}, []string{"result"})

	// ConfigEntries reports the number of loaded entries per document kind.
	ConfigEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "novel_shell_config_entries",
		Help: "Number of entries in the loaded configuration snapshot by kind",
	}, []string{"kind"})

	// HTTPRequestsTotal counts served requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novel_shell_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration tracks request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "novel_shell_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})
)

// RecordConfigLoad records the outcome of a configuration load.
func RecordConfigLoad(err error) {
	ConfigLoadTotal.WithLabelValues(loadResultLabel(err)).Inc()
}

// SetConfigEntries publishes the per-kind entry counts of a loaded snapshot.
func SetConfigEntries(summary assets.Summary) {
	ConfigEntries.WithLabelValues("characters").Set(float64(summary.Characters))
	ConfigEntries.WithLabelValues("backgrounds").Set(float64(summary.Backgrounds))
	ConfigEntries.WithLabelValues("fonts").Set(float64(summary.Fonts))
	ConfigEntries.WithLabelValues("text_configs").Set(float64(summary.TextConfigs))
}

// ObserveHTTPRequest records one completed request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func loadResultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, assets.ErrRead):
		return "read_error"
	case errors.Is(err, assets.ErrParse):
		return "parse_error"
	default:
		return "error"
	}
}

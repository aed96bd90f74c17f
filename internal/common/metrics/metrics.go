// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_requests_total",
			Help: "Total number of requests handled per operation",
		},
		[]string{"operation", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bfhl_request_duration_seconds",
			Help:    "Duration of request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	RequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bfhl_requests_active",
			Help: "Number of requests currently being handled",
		},
	)

	GenAIFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_genai_failures_total",
			Help: "Total number of failed generative text calls",
		},
		[]string{"error_code"},
	)
)

// ObserveRequest records one finished request. operation is "none" when the
// body never resolved to an operation.
func ObserveRequest(operation string, status int, elapsed time.Duration) {
	if operation == "" {
		operation = "none"
	}
	RequestsTotal.WithLabelValues(operation, StatusClass(status)).Inc()
	RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// StatusClass buckets a response status as success, client_error or server_error.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "success"
	}
}

// Package metrics provides Prometheus metrics for the dashboard gateway and
// the state synchronizer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Gateway metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodash_gateway_requests_total",
			Help: "Total number of gateway requests",
		},
		[]string{"method", "route", "status"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studiodash_gateway_request_duration_seconds",
			Help:    "Gateway request duration in seconds, including the backend round trip",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodash_upstream_failures_total",
			Help: "Backend calls that failed at the transport level",
		},
		[]string{"route"},
	)

	// Synchronizer metrics
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodash_refreshes_total",
			Help: "State refreshes by resource and result",
		},
		[]string{"resource", "result"},
	)

	initSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodash_init_submissions_total",
			Help: "Project init submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordGatewayRequest records a gateway request metric.
func RecordGatewayRequest(method, route string, status int, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	gatewayRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstreamFailure records a backend transport failure seen by the gateway.
func RecordUpstreamFailure(route string) {
	upstreamFailuresTotal.WithLabelValues(route).Inc()
}

// RecordRefresh records one synchronizer refresh. result is "ok",
// "rejected" or "unreachable".
func RecordRefresh(resource, result string) {
	refreshesTotal.WithLabelValues(resource, result).Inc()
}

// RecordInitSubmission records the terminal outcome of a project init.
func RecordInitSubmission(outcome string) {
	initSubmissionsTotal.WithLabelValues(outcome).Inc()
}

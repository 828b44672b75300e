package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentalhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leaseOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalhub_lease_operations_total",
		Help: "Count of lease create/delete operations by result",
	}, []string{"operation", "result"})

	bookingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalhub_booking_operations_total",
		Help: "Count of booking mutations by operation and result",
	}, []string{"operation", "result"})

	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalhub_auth_failures_total",
		Help: "Count of rejected authentications by reason",
	}, []string{"reason"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLeaseOperation counts a lease create or delete attempt.
func ObserveLeaseOperation(operation, result string) {
	leaseOperations.WithLabelValues(operation, result).Inc()
}

// ObserveBookingOperation counts a booking mutation attempt.
func ObserveBookingOperation(operation, result string) {
	bookingOperations.WithLabelValues(operation, result).Inc()
}

// ObserveAuthFailure counts a rejected authentication.
func ObserveAuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}

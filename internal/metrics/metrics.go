// Package metrics provides Prometheus metrics for harpy-detect.
//
// Metrics are exposed at /metrics:
//
// Request Metrics:
//   - harpy_detect_requests_total: Total requests by method, route and status class
//   - harpy_detect_request_duration_seconds: Request latency histogram
//   - harpy_detect_active_requests: Requests currently in flight
//
// Filter Metrics:
//   - harpy_detect_regions_total: Detection regions by mode and result (filtered/skipped)
//   - harpy_detect_filter_duration_seconds: Time spent filtering one image
//   - harpy_detect_decode_failures_total: Image payloads that failed to decode
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Region results.
const (
	RegionFiltered = "filtered"
	RegionSkipped  = "skipped"
)

var (
	// RequestsTotal counts total number of requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harpy_detect_requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks request duration in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harpy_detect_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ActiveRequests tracks number of in-flight requests
	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "harpy_detect_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// RegionsTotal counts detection regions by filter mode and result
	RegionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harpy_detect_regions_total",
			Help: "Total number of detection regions processed by the privacy filter",
		},
		[]string{"mode", "result"},
	)

	// FilterDuration tracks time spent filtering one image
	FilterDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harpy_detect_filter_duration_seconds",
			Help:    "Time spent applying privacy filters to one image",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"mode"},
	)

	// DecodeFailuresTotal counts image payloads that could not be decoded
	DecodeFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "harpy_detect_decode_failures_total",
			Help: "Total number of image payloads that failed to decode",
		},
	)
)

// RecordRequest records a served HTTP request
func RecordRequest(method, route string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, route, statusCodeToString(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncrementActiveRequests increments the in-flight gauge
func IncrementActiveRequests() {
	ActiveRequests.Inc()
}

// DecrementActiveRequests decrements the in-flight gauge
func DecrementActiveRequests() {
	ActiveRequests.Dec()
}

// RecordRegion records one detection region handled by the filter
func RecordRegion(mode string, applied bool) {
	result := RegionSkipped
	if applied {
		result = RegionFiltered
	}
	RegionsTotal.WithLabelValues(mode, result).Inc()
}

// ObserveFilter records time spent filtering one image
func ObserveFilter(mode string, duration time.Duration) {
	FilterDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordDecodeFailure records an undecodable image payload
func RecordDecodeFailure() {
	DecodeFailuresTotal.Inc()
}

// statusCodeToString converts HTTP status code to a string category
func statusCodeToString(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

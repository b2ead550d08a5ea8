package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "moodcanvas"
	subsystem = "api"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	// Vendor calls, one observation per attempt.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_requests_total",
			Help:      "Total AI provider calls by outcome",
		},
		[]string{"provider", "capability", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_request_duration_seconds",
			Help:      "AI provider call latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90, 120},
		},
		[]string{"provider", "capability"},
	)

	CooldownRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generation_cooldown_rejections_total",
			Help:      "Image generation requests rejected by the duplicate-request cooldown",
		},
	)

	ImagesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "images_stored_total",
			Help:      "Generated images persisted, by content type",
		},
		[]string{"content_type"},
	)

	ImagesStoredBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "images_stored_bytes_total",
			Help:      "Total bytes of generated images persisted",
		},
	)

	OrphanImagesSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orphan_images_swept_total",
			Help:      "Generated images removed because no diary referenced them",
		},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordProviderCall records one vendor attempt.
func RecordProviderCall(provider, capability, outcome string, duration float64) {
	ProviderRequestsTotal.WithLabelValues(provider, capability, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider, capability).Observe(duration)
}

// RecordImageStored records a persisted generated image.
func RecordImageStored(contentType string, size int) {
	ImagesStoredTotal.WithLabelValues(contentType).Inc()
	ImagesStoredBytesTotal.Add(float64(size))
}

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets tuned for request times from a few ms up to the
	// core API client timeout. Coarse tail buckets keep cardinality low.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Core API Client Metrics
	CoreAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "core_api_operation_duration_seconds",
			Help:    "Core backend API operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	CoreAPIRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "core_api_operation_total",
			Help: "Total number of core backend API operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Storage Client Metrics
	StorageRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_logins_total",
			Help: "Total login attempts",
		},
		[]string{"status"},
	)

	ChatMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_chat_messages_sent_total",
			Help: "Total chat send attempts",
		},
		[]string{"status"},
	)

	ChatSendRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorhub_chat_send_rollbacks_total",
			Help: "Optimistic chat messages rolled back after a failed send",
		},
	)

	SessionDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_session_deletes_total",
			Help: "Mentoring session deletions by trigger (end/refuse)",
		},
		[]string{"reason", "status"},
	)

	SessionLinkUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_session_link_updates_total",
			Help: "Mentoring session link edits",
		},
		[]string{"status"},
	)

	SessionStarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_session_starts_total",
			Help: "Mentoring session start attempts by type",
		},
		[]string{"type", "status"},
	)

	AvatarUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_avatar_uploads_total",
			Help: "Profile avatar upload attempts",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

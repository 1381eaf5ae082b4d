package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry served on /api/metrics. Using our own
// registry keeps default-registry noise from third-party libs out of scrapes.
var Registry = prometheus.NewRegistry()

var (
	// Custom histogram buckets for API response times ranging from
	// milliseconds to ~1 minute. Finer low-end granularity than DefBuckets.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	factory = promauto.With(Registry)

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheInvalidations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of cache invalidations",
		},
		[]string{"cache_name", "reason"},
	)

	// Object Storage Client Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Change Feed Metrics
	ChangeFeedEvents = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_changefeed_events_total",
			Help: "Total number of change feed events received from the database",
		},
		[]string{"table", "action"},
	)

	ChangeFeedSubscriptions = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentorstack_changefeed_subscriptions",
			Help: "Number of active change feed subscriptions",
		},
		[]string{"table"},
	)

	ChangeFeedDroppedEvents = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_changefeed_dropped_events_total",
			Help: "Change feed events dropped because a subscriber was slow or closed",
		},
		[]string{"table"},
	)

	// WebSocket Metrics
	WebSocketConnections = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mentorstack_websocket_connections",
			Help: "Number of connected dashboard WebSocket clients",
		},
	)

	WebSocketMessagesSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_websocket_messages_sent_total",
			Help: "Total number of refresh hints pushed to WebSocket clients",
		},
		[]string{"table"},
	)

	// Business Metrics
	IdentityResolutions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_identity_resolutions_total",
			Help: "Total number of account-to-mentor identity resolutions",
		},
		[]string{"outcome"},
	)

	SlotCreations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_slot_creations_total",
			Help: "Total number of availability slot creation attempts",
		},
		[]string{"status"},
	)

	SlotDeletions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_slot_deletions_total",
			Help: "Total number of availability slot deletion attempts",
		},
		[]string{"status"},
	)

	MentorApplications = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_mentor_applications_total",
			Help: "Total mentor application submissions",
		},
		[]string{"status"},
	)

	ProfileUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_profile_updates_total",
			Help: "Total number of profile updates",
		},
		[]string{"status"},
	)

	ProfilePictureUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorstack_profile_picture_uploads_total",
			Help: "Total number of profile picture uploads",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)

	serviceInfo = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentorstack_service_info",
			Help: "Static service identification",
		},
		[]string{"service"},
	)
)

// Init registers process collectors and stamps the service name label.
func Init(serviceName string) {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serviceInfo.WithLabelValues(serviceName).Set(1)
}

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

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// Registry holds the console and relay collectors.
	Registry = prometheus.NewRegistry()

	clientAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "client",
			Name:      "attempts_total",
			Help:      "Backend request attempts by outcome kind.",
		},
		[]string{"method", "outcome"},
	)

	clientRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "client",
			Name:      "retries_total",
			Help:      "Backend request re-issues after a transient failure.",
		},
		[]string{"method"},
	)

	clientDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wms",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Duration of logical backend requests including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"method", "outcome"},
	)

	sessionInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "session",
			Name:      "invalidations_total",
			Help:      "Sessions torn down after an unauthorized response.",
		},
	)

	listFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "state",
			Name:      "list_fetches_total",
			Help:      "List fetches per resource by result.",
		},
		[]string{"resource", "result"},
	)

	relayInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wms",
			Subsystem: "relay",
			Name:      "inflight_requests",
			Help:      "Requests currently being relayed.",
		},
	)

	relayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "relay",
			Name:      "requests_total",
			Help:      "Requests handled by the CORS relay.",
		},
		[]string{"method", "status"},
	)

	relayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wms",
			Subsystem: "relay",
			Name:      "request_duration_seconds",
			Help:      "Duration of relayed requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)

	backendUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wms",
			Subsystem: "backend",
			Name:      "up",
			Help:      "1 when the last reachability probe succeeded.",
		},
	)

	pollerRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "poller",
			Name:      "runs_total",
			Help:      "Scheduled refresh runs by job and result.",
		},
		[]string{"job", "result"},
	)
)

func init() {
	Registry.MustRegister(
		clientAttempts,
		clientRetries,
		clientDuration,
		sessionInvalidations,
		listFetches,
		relayInFlight,
		relayRequests,
		relayDuration,
		backendUp,
		pollerRuns,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry on a fasthttp route.
func Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

func RecordAttempt(method, outcome string) {
	clientAttempts.WithLabelValues(method, outcome).Inc()
}

func RecordRetry(method string) {
	clientRetries.WithLabelValues(method).Inc()
}

func RecordRequest(method, outcome string, elapsed time.Duration) {
	clientDuration.WithLabelValues(method, outcome).Observe(elapsed.Seconds())
}

func RecordInvalidation() {
	sessionInvalidations.Inc()
}

func RecordListFetch(resource string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	listFetches.WithLabelValues(resource, result).Inc()
}

// TrackRelay increments the in-flight gauge and returns the completion callback.
func TrackRelay(method string) func(status int) {
	start := time.Now()
	relayInFlight.Inc()
	return func(status int) {
		relayInFlight.Dec()
		relayRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
		relayDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}
}

func SetBackendUp(up bool) {
	if up {
		backendUp.Set(1)
		return
	}
	backendUp.Set(0)
}

func RecordPollerRun(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	pollerRuns.WithLabelValues(job, result).Inc()
}

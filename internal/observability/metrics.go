package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases, SLO breaches.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Open-Meteo API call rate. Watch for: error vs success ratio.
	ForecastAPICallsTotal *prometheus.CounterVec

	// Forecast API latency per request. Watch for: p95 > 2s (upstream degradation).
	ForecastAPIDuration *prometheus.HistogramVec

	// Day-bucket cache hits. Within a session every revisited day should hit.
	DayCacheHitsTotal prometheus.Counter

	// Day-bucket cache misses; each miss triggers a full hourly fetch.
	DayCacheMissesTotal prometheus.Counter

	// Fetch responses discarded because a newer fetch superseded them.
	StaleFetchesDiscardedTotal prometheus.Counter

	// Smart-window computations. Roughly one per day view render.
	SmartWindowsComputedTotal prometheus.Counter

	// Plan request errors by category. Watch for: permission_denied spikes (client config), fetch_failed (upstream).
	PlanErrorsTotal *prometheus.CounterVec

	// Calendar hook invocations. Watch for: drop to zero (broken integration).
	CalendarEventsTotal prometheus.Counter

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	ForecastAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastApiCallsTotal",
			Help: "Total number of Open-Meteo forecast API calls",
		},
		[]string{"status"},
	)
	ForecastAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forecastApiDurationSeconds",
			Help:    "Open-Meteo API latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	DayCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dayCacheHitsTotal",
			Help: "Day-bucket cache hits",
		},
	)
	DayCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dayCacheMissesTotal",
			Help: "Day-bucket cache misses (each triggers a forecast fetch)",
		},
	)
	StaleFetchesDiscardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staleFetchesDiscardedTotal",
			Help: "Forecast responses discarded because a newer fetch superseded them",
		},
	)
	SmartWindowsComputedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smartWindowsComputedTotal",
			Help: "Smart-window selection computations",
		},
	)
	PlanErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planErrorsTotal",
			Help: "Plan request errors by category",
		},
		[]string{"category"},
	)
	CalendarEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "calendarEventsTotal",
			Help: "Calendar hook invocations",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Requests denied by the rate limiter",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		ForecastAPICallsTotal,
		ForecastAPIDuration,
		DayCacheHitsTotal,
		DayCacheMissesTotal,
		StaleFetchesDiscardedTotal,
		SmartWindowsComputedTotal,
		PlanErrorsTotal,
		CalendarEventsTotal,
		RateLimitDeniedTotal,
	)
}

// MetricsHandler returns the Prometheus exposition handler backed by
// the service registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordPlanError increments the plan error counter for a category.
func RecordPlanError(category string) {
	PlanErrorsTotal.WithLabelValues(category).Inc()
}

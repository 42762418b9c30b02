package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestMetrics_Usable verifies that all Prometheus metrics can be used without
// panic, ensuring label dimensions match usage across the client, http, and planner packages.
func TestMetrics_Usable(t *testing.T) {
	// Route uses path template to avoid cardinality (e.g. /plan/days/{day} not /plan/days/2025-06-01)
	HTTPRequestsTotal.WithLabelValues("GET", "/plan/days/{day}", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/plan").Observe(0.01)
	HTTPRequestsInFlight.Inc()
	HTTPRequestsInFlight.Dec()
	ForecastAPICallsTotal.WithLabelValues("success").Inc()
	ForecastAPICallsTotal.WithLabelValues("error").Inc()
	ForecastAPIDuration.WithLabelValues("success").Observe(0.1)
	DayCacheHitsTotal.Inc()
	DayCacheMissesTotal.Inc()
	StaleFetchesDiscardedTotal.Inc()
	SmartWindowsComputedTotal.Inc()
	CalendarEventsTotal.Inc()
	RateLimitDeniedTotal.Inc()
	RecordPlanError("fetch_failed")
	RecordPlanError("permission_denied")
}

// TestMetricsHandler_ServesPrometheusFormat verifies that MetricsHandler serves
// Prometheus text exposition format with correct HTTP status and metric output.
func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	handler := MetricsHandler()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "httpRequestsTotal") {
		t.Error("MetricsHandler response should contain metric output")
	}
	if !strings.Contains(body, "forecastApiCallsTotal") {
		t.Error("MetricsHandler response should contain forecast API metrics")
	}
}

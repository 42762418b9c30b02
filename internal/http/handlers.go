package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-planner-service/internal/client"
	"github.com/kjstillabower/weather-planner-service/internal/degraded"
	"github.com/kjstillabower/weather-planner-service/internal/forecast"
	"github.com/kjstillabower/weather-planner-service/internal/lifecycle"
	"github.com/kjstillabower/weather-planner-service/internal/location"
	"github.com/kjstillabower/weather-planner-service/internal/models"
	"github.com/kjstillabower/weather-planner-service/internal/observability"
	"github.com/kjstillabower/weather-planner-service/internal/planner"
	"github.com/kjstillabower/weather-planner-service/internal/validation"
)

// HealthConfig holds lifecycle thresholds for the health handler.
type HealthConfig struct {
	DegradedWindow   time.Duration
	DegradedErrorPct int
	StartTime        time.Time
}

// degradedMinSamples avoids flapping to degraded off a single failed fetch.
const degradedMinSamples = 5

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	session          *planner.Session
	locations        location.Provider
	healthConfig     *HealthConfig
	logger           *zap.Logger
	rateLimiter      *rate.Limiter
	intentMaxLen     int
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler. locations supplies coordinates for
// requests that carry none of their own.
func NewHandler(
	session *planner.Session,
	locations location.Provider,
	healthConfig *HealthConfig,
	logger *zap.Logger,
	rateLimiter *rate.Limiter,
	intentMaxLen int,
) *Handler {
	return &Handler{
		session:      session,
		locations:    locations,
		healthConfig: healthConfig,
		logger:       logger,
		rateLimiter:  rateLimiter,
		intentMaxLen: intentMaxLen,
	}
}

// GetPlan handles GET /plan?lat=&lon=&intent=. Returns the day selector
// and the first day's hours, smart windows, and initial slider index.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	coords, err := h.resolveCoordinates(r)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}
	intent, err := validation.ValidateIntent(r.URL.Query().Get("intent"), h.intentMaxLen)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}

	overview, err := h.session.Overview(r.Context(), coords, intent, time.Now())
	if err != nil {
		degraded.RecordError()
		h.writePlanError(w, r, err)
		return
	}
	degraded.RecordSuccess()
	writeJSON(w, http.StatusOK, overview)
}

// GetDay handles GET /plan/days/{day}?lat=&lon=&intent=. Serves the
// cached day when known; an unknown day triggers one fresh fetch.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	var day models.DayKey
	if err := day.UnmarshalText([]byte(mux.Vars(r)["day"])); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_DAY", "day must be YYYY-MM-DD")
		return
	}

	coords, err := h.resolveCoordinates(r)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}
	intent, err := validation.ValidateIntent(r.URL.Query().Get("intent"), h.intentMaxLen)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}

	view, err := h.session.DayView(r.Context(), coords, day, intent, day.Time(time.Local))
	if err != nil {
		degraded.RecordError()
		h.writePlanError(w, r, err)
		return
	}
	degraded.RecordSuccess()
	writeJSON(w, http.StatusOK, view)
}

// GetIntents handles GET /intents. Returns the enumerated activity
// labels; free text remains valid anywhere an intent is accepted.
func (h *Handler) GetIntents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"intents": models.Intents})
}

// calendarRequest is the POST /calendar body. Day and Index select the
// chosen hour out of the session cache; Index is a pointer so "no hour
// chosen yet" is representable.
type calendarRequest struct {
	Intent string `json:"intent"`
	Day    string `json:"day"`
	Index  *int   `json:"index"`
	Notify bool   `json:"notify"`
}

// PostCalendar handles POST /calendar: resolves the chosen hour and
// invokes the calendar/notification hook. The service performs no
// calendar I/O itself.
func (h *Handler) PostCalendar(w http.ResponseWriter, r *http.Request) {
	var req calendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}

	intent, err := validation.ValidateIntent(req.Intent, h.intentMaxLen)
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}

	var hour *models.HourRecord
	if req.Index != nil {
		var day models.DayKey
		if err := day.UnmarshalText([]byte(req.Day)); err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_DAY", "day must be YYYY-MM-DD")
			return
		}
		hour = h.session.Hour(day, *req.Index)
	}

	if err := h.session.Schedule(intent, hour, req.Notify); err != nil {
		if errors.Is(err, planner.ErrNoHourSelected) {
			writeError(w, r, http.StatusBadRequest, "NO_HOUR_SELECTED", "Slide to choose an hour first")
			return
		}
		h.writePlanError(w, r, err)
		return
	}
	observability.CalendarEventsTotal.Inc()
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"scheduled": true,
		"intent":    intent,
		"hour":      hour,
		"notify":    req.Notify,
	})
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, statusCode, reason := h.computeHealthStatus()

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", status),
			zap.String("reason", reason))
	}
	h.healthStatusPrev = status
	h.healthStatusMu.Unlock()

	checks := map[string]string{"forecastApi": "healthy"}
	if status == "degraded" {
		checks["forecastApi"] = "unhealthy"
	}

	resp := map[string]interface{}{
		"status": status,
		"checks": checks,
	}
	if h.healthConfig != nil && !h.healthConfig.StartTime.IsZero() {
		resp["uptimeSeconds"] = int(time.Since(h.healthConfig.StartTime).Seconds())
	}
	writeJSON(w, statusCode, resp)
}

// computeHealthStatus derives the current status from the shutdown flag
// and the fetch error rate over the degraded window.
func (h *Handler) computeHealthStatus() (status string, statusCode int, reason string) {
	if lifecycle.IsShuttingDown() {
		return "shutting-down", http.StatusServiceUnavailable, "shutdown in progress"
	}

	window := 60 * time.Second
	threshold := 5
	if h.healthConfig != nil {
		if h.healthConfig.DegradedWindow > 0 {
			window = h.healthConfig.DegradedWindow
		}
		if h.healthConfig.DegradedErrorPct > 0 {
			threshold = h.healthConfig.DegradedErrorPct
		}
	}

	errCount, total := degraded.ErrorRate(window)
	if total >= degradedMinSamples && errCount*100 >= total*threshold {
		return "degraded", http.StatusOK, "forecast fetch error rate above threshold"
	}
	return "ok", http.StatusOK, ""
}

// resolveCoordinates takes coordinates from lat/lon query parameters
// when present, otherwise falls back to the location provider. A
// provider without a grant surfaces ErrPermissionDenied, which is
// terminal for the request.
func (h *Handler) resolveCoordinates(r *http.Request) (location.Coordinates, error) {
	q := r.URL.Query()
	latStr, lonStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	if latStr == "" && lonStr == "" {
		return h.locations.Current(r.Context())
	}
	lat, lon, err := validation.ParseCoordinates(latStr, lonStr)
	if err != nil {
		return location.Coordinates{}, err
	}
	return location.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writePlanError maps pipeline and collaborator errors to user-visible
// HTTP error states. One human-readable message per failure; no stale
// or partial forecast is ever served alongside an error.
func (h *Handler) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	observability.RecordPlanError(string(client.CategorizeError(err)))
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		logger.Debug("plan request failed", zap.Error(err))
	}

	switch {
	case errors.Is(err, validation.ErrCoordinateSyntax),
		errors.Is(err, validation.ErrLatitudeRange),
		errors.Is(err, validation.ErrLongitudeRange):
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATES", "lat and lon must be valid coordinates")
	case errors.Is(err, validation.ErrIntentTooLong):
		writeError(w, r, http.StatusBadRequest, "INVALID_INTENT", "intent is too long")
	case errors.Is(err, location.ErrPermissionDenied):
		writeError(w, r, http.StatusForbidden, "PERMISSION_DENIED", "Location permission is required")
	case errors.Is(err, planner.ErrDayNotFound):
		writeError(w, r, http.StatusNotFound, "UNKNOWN_DAY", "day is outside the forecast horizon")
	case errors.Is(err, forecast.ErrEmptyInput):
		writeError(w, r, http.StatusNotFound, "NO_FORECAST", "no forecast available")
	case errors.Is(err, forecast.ErrMalformedInput):
		writeError(w, r, http.StatusBadGateway, "BAD_UPSTREAM_PAYLOAD", "forecast provider returned malformed data")
	default:
		writeError(w, r, http.StatusServiceUnavailable, "FORECAST_UNAVAILABLE", "Failed to load forecast")
	}
}

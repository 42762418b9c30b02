package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-planner-service/internal/client"
	"github.com/kjstillabower/weather-planner-service/internal/forecast"
	"github.com/kjstillabower/weather-planner-service/internal/location"
	"github.com/kjstillabower/weather-planner-service/internal/models"
	"github.com/kjstillabower/weather-planner-service/internal/observability"
)

// ErrDayNotFound is returned when a requested day is outside the
// cached planning horizon even after a fresh fetch.
var ErrDayNotFound = errors.New("day not in forecast horizon")

// Overview is the initial planning state: the day selector plus the
// first day's view.
type Overview struct {
	Days     []models.DayKey `json:"days"`
	Selected DayView         `json:"selected"`
}

// DayView is one day's browsing state: its hours, the smart-window
// suggestions for the active intent, and the slider's starting index.
type DayView struct {
	Day          models.DayKey         `json:"day"`
	Hours        []models.HourRecord   `json:"hours"`
	Windows      []models.ScoredWindow `json:"windows"`
	NearestIndex int                   `json:"nearestIndex"`
}

// Session owns the pipeline's only mutable state: the day-bucket cache
// accumulated over one planning session. Fetch responses are tagged
// with a request epoch; a response that resolves after a newer fetch
// began is discarded instead of clobbering fresher state.
type Session struct {
	fetcher       client.ForecastClient
	logger        *zap.Logger
	windowCount   int
	minSeparation int

	mu       sync.Mutex
	cache    *forecast.BucketCache
	days     []models.DayKey // planning horizon, first-seen order, max 7
	epoch    uint64
	calendar CalendarFunc
}

// NewSession builds a session around a forecast fetcher. windowCount
// and minSeparation of zero fall back to the defaults (3 windows, 2
// slots apart).
func NewSession(fetcher client.ForecastClient, logger *zap.Logger, windowCount, minSeparation int) *Session {
	if windowCount <= 0 {
		windowCount = forecast.DefaultWindowCount
	}
	if minSeparation <= 0 {
		minSeparation = forecast.DefaultMinSeparation
	}
	return &Session{
		fetcher:       fetcher,
		logger:        logger,
		windowCount:   windowCount,
		minSeparation: minSeparation,
		cache:         forecast.NewBucketCache(),
	}
}

// Load fetches the hourly feed for the coordinates, normalizes it once,
// buckets by day, and merges into the session cache. Stale responses
// (superseded by a newer Load) are dropped rather than merged.
//
// Fetch failure propagates unchanged; the HTTP layer maps it to a
// user-visible error state. No retries, no partial results.
func (s *Session) Load(ctx context.Context, coords location.Coordinates) error {
	epoch := s.beginFetch()

	raw, err := s.fetcher.FetchHourly(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return err
	}

	hours, err := forecast.Normalize(raw)
	if err != nil {
		return err
	}
	buckets, err := forecast.Bucket(hours)
	if err != nil {
		return err
	}

	if !s.commit(epoch, buckets) {
		observability.StaleFetchesDiscardedTotal.Inc()
		if s.logger != nil {
			s.logger.Debug("stale fetch discarded", zap.Uint64("epoch", epoch))
		}
	}
	return nil
}

// beginFetch advances the request epoch and returns the new value.
func (s *Session) beginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// commit merges buckets into the cache if epoch is still current.
// Returns false when the response was superseded and dropped.
func (s *Session) commit(epoch uint64, buckets forecast.DayBuckets) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.cache.Merge(buckets)
	all := s.cache.Days()
	if len(all) > forecast.PlanningHorizonDays {
		all = all[:forecast.PlanningHorizonDays]
	}
	s.days = all
	return true
}

// Days returns the planning horizon in first-seen order.
func (s *Session) Days() []models.DayKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days
}

// Hour returns a pointer to the hour at index within a cached day, or
// nil when the day is unknown or the index is out of range. Used to
// resolve a calendar request's chosen slot.
func (s *Session) Hour(day models.DayKey, index int) *models.HourRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	hours, ok := s.cache.Hours(day)
	if !ok || index < 0 || index >= len(hours) {
		return nil
	}
	h := hours[index]
	return &h
}

// Overview returns the day selector and the first day's view, loading
// the forecast when the session is empty. now anchors the initial
// slider position at the nearest wall-clock hour.
func (s *Session) Overview(ctx context.Context, coords location.Coordinates, intent string, now time.Time) (Overview, error) {
	s.mu.Lock()
	empty := s.cache.Len() == 0
	s.mu.Unlock()

	if empty {
		if err := s.Load(ctx, coords); err != nil {
			return Overview{}, err
		}
	}

	days := s.Days()
	if len(days) == 0 {
		return Overview{}, forecast.ErrEmptyInput
	}

	view, err := s.DayView(ctx, coords, days[0], intent, now)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Days: days, Selected: view}, nil
}

// DayView returns one day's hours, windows, and slider index. Cache
// first: a cached day is served as-is for the whole session; only an
// unknown day triggers a fresh fetch. ref anchors the slider.
func (s *Session) DayView(ctx context.Context, coords location.Coordinates, day models.DayKey, intent string, ref time.Time) (DayView, error) {
	s.mu.Lock()
	hours, ok := s.cache.Hours(day)
	s.mu.Unlock()

	if ok {
		observability.DayCacheHitsTotal.Inc()
	} else {
		observability.DayCacheMissesTotal.Inc()
		if err := s.Load(ctx, coords); err != nil {
			return DayView{}, err
		}
		s.mu.Lock()
		hours, ok = s.cache.Hours(day)
		s.mu.Unlock()
		if !ok {
			return DayView{}, ErrDayNotFound
		}
	}

	windows := forecast.SelectWindows(hours, intent, s.windowCount, s.minSeparation)
	observability.SmartWindowsComputedTotal.Inc()

	return DayView{
		Day:          day,
		Hours:        hours,
		Windows:      windows,
		NearestIndex: forecast.NearestHourIndex(hours, ref),
	}, nil
}

package planner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// ErrNoHourSelected is returned when scheduling without a chosen hour;
// the caller should prompt for a time first.
var ErrNoHourSelected = errors.New("no hour selected")

// CalendarFunc is the calendar/notification integration point. The
// session performs no calendar or notification I/O itself; a real
// integration (Google Calendar, push delivery) implements this hook.
type CalendarFunc func(intentLabel string, hour *models.HourRecord, notify bool)

// SetCalendarFunc installs the calendar hook. Safe to leave unset;
// Schedule then validates and drops the event.
func (s *Session) SetCalendarFunc(fn CalendarFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendar = fn
}

// Schedule invokes the calendar hook with the chosen intent and hour.
// An empty intent label becomes "Custom Event". Returns
// ErrNoHourSelected when hour is nil.
func (s *Session) Schedule(intentLabel string, hour *models.HourRecord, notify bool) error {
	if hour == nil {
		return ErrNoHourSelected
	}
	if intentLabel == "" {
		intentLabel = "Custom Event"
	}

	s.mu.Lock()
	fn := s.calendar
	s.mu.Unlock()
	if fn != nil {
		fn(intentLabel, hour, notify)
	}
	return nil
}

// LogCalendar returns a stub hook that only logs the event that a real
// calendar integration would create.
func LogCalendar(logger *zap.Logger) CalendarFunc {
	return func(intentLabel string, hour *models.HourRecord, notify bool) {
		logger.Info("calendar event requested",
			zap.String("intent", intentLabel),
			zap.Time("hour", hour.Timestamp),
			zap.Bool("notify", notify))
	}
}

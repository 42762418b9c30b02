package forecast

import (
	"testing"
	"time"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

func hoursAtClock(clockHours ...int) []models.HourRecord {
	out := make([]models.HourRecord, len(clockHours))
	for i, h := range clockHours {
		out[i] = hourAt(2025, time.June, 2, h)
	}
	return out
}

// TestNearestHourIndex verifies hour-of-day distance selection,
// including the first-occurrence tie-break.
func TestNearestHourIndex(t *testing.T) {
	tests := []struct {
		name    string
		hours   []models.HourRecord
		refHour int
		want    int
	}{
		{name: "exact match", hours: hoursAtClock(6, 9, 12), refHour: 9, want: 1},
		{name: "closest wins", hours: hoursAtClock(6, 9, 12), refHour: 11, want: 2},
		{name: "tie goes to first occurrence", hours: hoursAtClock(5, 9, 9, 14), refHour: 9, want: 1},
		{name: "equidistant neighbors pick earlier", hours: hoursAtClock(8, 10), refHour: 9, want: 0},
		{name: "single hour", hours: hoursAtClock(23), refHour: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref := time.Date(2025, time.June, 5, tc.refHour, 30, 0, 0, time.Local)
			if got := NearestHourIndex(tc.hours, ref); got != tc.want {
				t.Errorf("NearestHourIndex(ref=%d:30) = %d, want %d", tc.refHour, got, tc.want)
			}
		})
	}
}

// TestNearestHourIndex_Empty verifies the degenerate zero return for an
// empty sequence; callers must treat it as no-data, not a selection.
func TestNearestHourIndex_Empty(t *testing.T) {
	if got := NearestHourIndex(nil, time.Now()); got != 0 {
		t.Errorf("NearestHourIndex(nil) = %d, want 0", got)
	}
}

// TestNearestHourIndex_DateIgnored verifies only wall-clock hour is
// compared; the reference date contributes nothing.
func TestNearestHourIndex_DateIgnored(t *testing.T) {
	hours := hoursAtClock(7, 13, 19)
	ref := time.Date(1999, time.January, 1, 13, 0, 0, 0, time.Local)
	if got := NearestHourIndex(hours, ref); got != 1 {
		t.Errorf("NearestHourIndex = %d, want 1", got)
	}
}

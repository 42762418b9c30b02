package forecast

import (
	"time"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// NearestHourIndex finds the hour whose local wall-clock hour (0-23)
// is numerically closest to the reference's. Dates are ignored; only
// hour-of-day matters, which is what a slider's initial position wants.
// Ties go to the first occurrence. Returns 0 for an empty sequence,
// which callers must treat as "no data", not a valid selection.
func NearestHourIndex(hours []models.HourRecord, ref time.Time) int {
	if len(hours) == 0 {
		return 0
	}

	target := ref.Hour()
	best := 0
	bestDiff := -1
	for i, h := range hours {
		d := abs(h.Timestamp.Hour() - target)
		if bestDiff < 0 || d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}

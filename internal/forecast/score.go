package forecast

import (
	"math"
	"strings"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// preferredTempF is the comfort anchor; penalty grows with distance
// from it and saturates 20 degrees out.
const preferredTempF = 72

// Score rates an hour's suitability for an activity intent on a 0-100
// scale. The formula is a fixed rule table, not a model; its additive
// order is contract surface and must not be rearranged:
//
//  1. start at 100
//  2. minus min(40, |tempF-72|*2)
//  3. condition penalty: Rain -25, Snow -20, Thunder -35, Clouds -5
//  4. intent keyword adjustments, case-insensitive substring match
//     ("workout": -10 when tempF > 85; "photo": +6 when Clear;
//     "study": -15 when Thunder), each checked independently
//  5. clamp to [0,100] and round, only at the end
//
// Intent is opaque text; substring matching is deliberately naive, so
// e.g. "photosynthesis" triggers the "photo" rule. Pure function.
func Score(hour models.HourRecord, intent string) int {
	score := 100.0
	score -= math.Min(40, math.Abs(float64(hour.TemperatureF-preferredTempF))*2)

	switch hour.Condition {
	case models.ConditionRain:
		score -= 25
	case models.ConditionSnow:
		score -= 20
	case models.ConditionThunder:
		score -= 35
	case models.ConditionClouds:
		score -= 5
	}

	s := strings.ToLower(intent)
	if strings.Contains(s, "workout") && hour.TemperatureF > 85 {
		score -= 10
	}
	if strings.Contains(s, "photo") && hour.Condition == models.ConditionClear {
		score += 6
	}
	if strings.Contains(s, "study") && hour.Condition == models.ConditionThunder {
		score -= 15
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

package forecast

import (
	"sort"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// Defaults for smart-window selection: up to three picks, at least two
// slider positions apart so suggestions don't cluster in one span.
const (
	DefaultWindowCount   = 3
	DefaultMinSeparation = 2
)

// SelectWindows scores every hour against the intent and returns up to
// k local maxima whose indices are mutually separated by at least
// minSeparation from the previously accepted pick.
//
// Candidates are ordered by score descending with ties broken by
// ascending index; sort.SliceStable keyed on score alone guarantees the
// tie-break rather than leaving it to sort instability. An empty hour
// sequence yields an empty result, not an error. When fewer than k
// sufficiently separated candidates exist, fewer are returned.
func SelectWindows(hours []models.HourRecord, intent string, k, minSeparation int) []models.ScoredWindow {
	if len(hours) == 0 || k <= 0 {
		return nil
	}

	scored := make([]models.ScoredWindow, len(hours))
	for i, h := range hours {
		scored[i] = models.ScoredWindow{Index: i, Hour: h, Score: Score(h, intent)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	result := make([]models.ScoredWindow, 0, k)
	for _, w := range scored {
		if len(result) > 0 {
			last := result[len(result)-1].Index
			if abs(w.Index-last) < minSeparation {
				continue
			}
		}
		result = append(result, w)
		if len(result) == k {
			break
		}
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package forecast

import (
	"testing"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// TestSelectWindows_PicksTopScores verifies the best-scoring hours win
// when they are sufficiently separated.
func TestSelectWindows_PicksTopScores(t *testing.T) {
	hours := []models.HourRecord{
		hourWith(40, models.ConditionRain),  // poor
		hourWith(72, models.ConditionClear), // 100
		hourWith(45, models.ConditionSnow),  // poor
		hourWith(50, models.ConditionRain),  // poor
		hourWith(70, models.ConditionClear), // 96
		hourWith(42, models.ConditionRain),  // poor
		hourWith(68, models.ConditionClouds), // 87
	}

	got := SelectWindows(hours, "Chill", DefaultWindowCount, DefaultMinSeparation)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantIdx := []int{1, 4, 6}
	for i, w := range got {
		if w.Index != wantIdx[i] {
			t.Errorf("window[%d].Index = %d, want %d", i, w.Index, wantIdx[i])
		}
	}
	if got[0].Score != 100 {
		t.Errorf("window[0].Score = %d, want 100", got[0].Score)
	}
}

// TestSelectWindows_SeparationInvariant verifies consecutive accepted
// windows are at least minSeparation indices apart, measured against
// the most recently accepted pick.
func TestSelectWindows_SeparationInvariant(t *testing.T) {
	// All hours identical: every score ties, so acceptance is driven
	// purely by index order and separation.
	hours := make([]models.HourRecord, 8)
	for i := range hours {
		hours[i] = hourWith(72, models.ConditionClear)
	}

	got := SelectWindows(hours, "Picnic", 3, 2)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		diff := got[i].Index - got[i-1].Index
		if diff < 0 {
			diff = -diff
		}
		if diff < 2 {
			t.Errorf("windows %d and %d only %d apart, want >= 2", got[i-1].Index, got[i].Index, diff)
		}
	}
}

// TestSelectWindows_TieBreakAscendingIndex verifies equal scores keep
// original index order: the stable sort must not reorder ties.
func TestSelectWindows_TieBreakAscendingIndex(t *testing.T) {
	hours := make([]models.HourRecord, 6)
	for i := range hours {
		hours[i] = hourWith(72, models.ConditionClear)
	}

	got := SelectWindows(hours, "", 3, 2)
	wantIdx := []int{0, 2, 4}
	for i, w := range got {
		if w.Index != wantIdx[i] {
			t.Errorf("window[%d].Index = %d, want %d", i, w.Index, wantIdx[i])
		}
	}
}

// TestSelectWindows_EdgeCases verifies the deliberate empty-input
// policy (empty result, not an error) and short-input behavior.
func TestSelectWindows_EdgeCases(t *testing.T) {
	if got := SelectWindows(nil, "Chill", 3, 2); len(got) != 0 {
		t.Errorf("SelectWindows(nil) = %v, want empty", got)
	}

	// Two adjacent hours: only one window can be accepted.
	hours := []models.HourRecord{
		hourWith(72, models.ConditionClear),
		hourWith(72, models.ConditionClear),
	}
	got := SelectWindows(hours, "Chill", 3, 2)
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 when no separated candidates remain", len(got))
	}

	// Single hour yields a single window.
	got = SelectWindows(hours[:1], "Chill", 3, 2)
	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("single-hour result = %v, want one window at index 0", got)
	}
}

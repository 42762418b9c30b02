package forecast

import (
	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// PlanningHorizonDays caps the day selector at one week.
const PlanningHorizonDays = 7

// DayBuckets partitions a normalized hour sequence by local calendar
// date. Days preserves first-seen order (stable grouping, not sorted);
// it drives day-selector ordering downstream.
type DayBuckets struct {
	Days  []models.DayKey
	ByDay map[models.DayKey][]models.HourRecord
}

// Bucket groups hours by their local calendar date, keeping each day's
// hours in their original chronological order.
// Returns ErrEmptyInput on an empty sequence.
func Bucket(hours []models.HourRecord) (DayBuckets, error) {
	if len(hours) == 0 {
		return DayBuckets{}, ErrEmptyInput
	}

	b := DayBuckets{ByDay: make(map[models.DayKey][]models.HourRecord)}
	for _, h := range hours {
		key := models.DayKeyOf(h.Timestamp)
		if _, seen := b.ByDay[key]; !seen {
			b.Days = append(b.Days, key)
		}
		b.ByDay[key] = append(b.ByDay[key], h)
	}
	return b, nil
}

// LimitDays returns the first-seen day keys truncated to max entries.
// The bucket map itself is left intact; only the selector list shrinks.
func (b DayBuckets) LimitDays(max int) []models.DayKey {
	if max < 0 {
		max = 0
	}
	if len(b.Days) <= max {
		return b.Days
	}
	return b.Days[:max]
}

// BucketCache is the one piece of mutable state in the pipeline: day
// buckets accumulated over a planning session. Merge is insert-if-absent
// (cache-first policy): once a day's hours are stored they are never
// overwritten or evicted for the life of the session, even if a fresh
// fetch would differ. Key space is small (~7-30 days), so unbounded
// growth is acceptable. Not safe for concurrent use; callers serialize.
type BucketCache struct {
	days  []models.DayKey
	byDay map[models.DayKey][]models.HourRecord
}

// NewBucketCache returns an empty session cache.
func NewBucketCache() *BucketCache {
	return &BucketCache{byDay: make(map[models.DayKey][]models.HourRecord)}
}

// Merge inserts each absent day from b; days already cached keep their
// existing hours. Newly seen days are appended in b's order.
func (c *BucketCache) Merge(b DayBuckets) {
	for _, key := range b.Days {
		if _, ok := c.byDay[key]; ok {
			continue
		}
		c.byDay[key] = b.ByDay[key]
		c.days = append(c.days, key)
	}
}

// Hours returns the cached hours for a day, and whether the day is known.
func (c *BucketCache) Hours(key models.DayKey) ([]models.HourRecord, bool) {
	hours, ok := c.byDay[key]
	return hours, ok
}

// Days returns all cached day keys in first-seen order.
func (c *BucketCache) Days() []models.DayKey {
	return c.days
}

// Len returns the number of cached days.
func (c *BucketCache) Len() int {
	return len(c.days)
}

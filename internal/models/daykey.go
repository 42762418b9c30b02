package models

import (
	"fmt"
	"time"
)

// DayKey identifies a local calendar date. Two hours share a DayKey
// iff they fall on the same local date; time-of-day and zone offset
// are discarded. Comparable, so it can key maps directly.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf derives the DayKey from a timestamp's local calendar date.
func DayKeyOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// String renders the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Time returns midnight of the key's date in the given location.
// Used as the reference point when selecting a slider position for a
// non-current day.
func (k DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// MarshalText renders the key as YYYY-MM-DD so DayKey-keyed maps and
// fields serialize as plain date strings.
func (k DayKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a YYYY-MM-DD date string.
func (k *DayKey) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return fmt.Errorf("parse day key %q: %w", b, err)
	}
	*k = DayKeyOf(t)
	return nil
}

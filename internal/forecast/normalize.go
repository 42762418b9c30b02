package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kjstillabower/weather-planner-service/internal/models"
)

// hourlyTimeLayout is Open-Meteo's hourly timestamp shape: local wall
// time with no zone offset.
const hourlyTimeLayout = "2006-01-02T15:04"

// Normalize converts a raw hourly series into canonical HourRecords.
// Temperatures are rounded to whole Fahrenheit using math.Round, which
// rounds halves away from zero; tests pin the exact values. Referentially
// transparent: same input, same output, no side effects.
//
// Returns ErrMalformedInput when the three parallel sequences differ in
// length, a temperature is NaN or infinite, or a timestamp fails to parse.
func Normalize(raw models.RawHourlySeries) ([]models.HourRecord, error) {
	n := len(raw.Times)
	if len(raw.Temperatures) != n || len(raw.WeatherCodes) != n {
		return nil, fmt.Errorf("%w: sequence lengths %d/%d/%d",
			ErrMalformedInput, n, len(raw.Temperatures), len(raw.WeatherCodes))
	}

	fahrenheit := strings.Contains(strings.ToUpper(raw.Unit), "F")

	hours := make([]models.HourRecord, 0, n)
	for i := 0; i < n; i++ {
		temp := raw.Temperatures[i]
		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return nil, fmt.Errorf("%w: non-finite temperature at index %d", ErrMalformedInput, i)
		}

		ts, err := parseHourlyTime(raw.Times[i])
		if err != nil {
			return nil, fmt.Errorf("%w: timestamp at index %d: %v", ErrMalformedInput, i, err)
		}

		var tempF int
		if fahrenheit {
			tempF = int(math.Round(temp))
		} else {
			tempF = int(math.Round(temp*9/5 + 32))
		}

		hours = append(hours, models.HourRecord{
			Timestamp:    ts,
			Label:        hourLabel(ts),
			TemperatureF: tempF,
			Condition:    MapWeatherCode(raw.WeatherCodes[i]),
		})
	}
	return hours, nil
}

// parseHourlyTime accepts Open-Meteo's offset-less local timestamps and
// full RFC3339 strings. Offset-less values are interpreted in local time,
// matching how the forecast's day boundaries are presented to the user.
func parseHourlyTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(hourlyTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// hourLabel formats the display label for an hour, e.g. "3 PM".
// Presentation-only; logic never reads it back.
func hourLabel(t time.Time) string {
	return t.Format("3 PM")
}

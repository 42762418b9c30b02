package models

import "time"

// Condition is the closed set of normalized weather conditions an hour
// can carry. Every provider weather code maps to exactly one of these,
// with ConditionUnknown as the catch-all.
type Condition string

const (
	ConditionClear   Condition = "Clear"
	ConditionClouds  Condition = "Clouds"
	ConditionRain    Condition = "Rain"
	ConditionSnow    Condition = "Snow"
	ConditionThunder Condition = "Thunder"
	ConditionUnknown Condition = "Unknown"
)

// HourRecord is one normalized hour of forecast.
// TemperatureF is rounded to the nearest whole degree Fahrenheit.
// Label is presentation-only and derived solely from Timestamp.
type HourRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Label        string    `json:"label"`
	TemperatureF int       `json:"temperatureF"`
	Condition    Condition `json:"condition"`
}

// ScoredWindow is an hour together with its comfort score for the
// active intent. Index is the hour's position in the day's sequence.
// Ephemeral: recomputed whenever the day or intent changes.
type ScoredWindow struct {
	Index int        `json:"index"`
	Hour  HourRecord `json:"hour"`
	Score int        `json:"score"`
}

// RawHourlySeries is the provider's hourly feed before normalization:
// three parallel sequences where index i in one corresponds to index i
// in the others. Unit is "C" or "F"; empty means Celsius.
type RawHourlySeries struct {
	Times        []string  `json:"time"`
	Temperatures []float64 `json:"temperature_2m"`
	WeatherCodes []int     `json:"weathercode"`
	Unit         string    `json:"-"`
}

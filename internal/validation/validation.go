package validation

import (
	"errors"
	"strconv"
	"strings"
)

// ErrLatitudeRange is returned when latitude is outside [-90, 90].
var ErrLatitudeRange = errors.New("latitude out of range")

// ErrLongitudeRange is returned when longitude is outside [-180, 180].
var ErrLongitudeRange = errors.New("longitude out of range")

// ErrCoordinateSyntax is returned when a coordinate fails to parse as a number.
var ErrCoordinateSyntax = errors.New("coordinate is not a number")

// ErrIntentTooLong is returned when an intent string exceeds the maximum length.
var ErrIntentTooLong = errors.New("intent too long")

// ParseCoordinates parses and range-checks latitude/longitude query
// values. Returns errors suitable for 400 INVALID_COORDINATES responses.
func ParseCoordinates(latStr, lonStr string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, ErrCoordinateSyntax
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, ErrCoordinateSyntax
	}
	if err = ValidateCoordinates(lat, lon); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// ValidateCoordinates range-checks a latitude/longitude pair.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return ErrLatitudeRange
	}
	if lon < -180 || lon > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// ValidateIntent trims the intent and enforces a maximum rune length.
// Intents are opaque free text for scoring, so no character restriction
// beyond length; empty is valid (no intent adjustments apply).
func ValidateIntent(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return "", ErrIntentTooLong
	}
	return s, nil
}

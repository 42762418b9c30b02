package validation

import (
	"errors"
	"strings"
	"testing"
)

// TestParseCoordinates covers syntax, range, and whitespace handling.
func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		name    string
		lat     string
		lon     string
		wantLat float64
		wantLon float64
		wantErr error
	}{
		{"Valid", "47.6062", "-122.3321", 47.6062, -122.3321, nil},
		{"Whitespace", " 10 ", " 20 ", 10, 20, nil},
		{"Boundaries", "90", "-180", 90, -180, nil},
		{"LatNotNumber", "north", "0", 0, 0, ErrCoordinateSyntax},
		{"LonNotNumber", "0", "west", 0, 0, ErrCoordinateSyntax},
		{"LonEmpty", "0", "", 0, 0, ErrCoordinateSyntax},
		{"LatTooHigh", "90.1", "0", 0, 0, ErrLatitudeRange},
		{"LatTooLow", "-90.1", "0", 0, 0, ErrLatitudeRange},
		{"LonTooHigh", "0", "180.1", 0, 0, ErrLongitudeRange},
		{"LonTooLow", "0", "-180.1", 0, 0, ErrLongitudeRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tc.lat, tc.lon)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseCoordinates(%q, %q) error = %v, want %v", tc.lat, tc.lon, err, tc.wantErr)
			}
			if err == nil && (lat != tc.wantLat || lon != tc.wantLon) {
				t.Errorf("ParseCoordinates(%q, %q) = (%v, %v), want (%v, %v)",
					tc.lat, tc.lon, lat, lon, tc.wantLat, tc.wantLon)
			}
		})
	}
}

// TestValidateIntent verifies trimming, the length cap, and that empty
// input stays valid.
func TestValidateIntent(t *testing.T) {
	if got, err := ValidateIntent("  Picnic  ", 100); err != nil || got != "Picnic" {
		t.Errorf("ValidateIntent trimmed = (%q, %v), want (Picnic, nil)", got, err)
	}
	if got, err := ValidateIntent("", 100); err != nil || got != "" {
		t.Errorf("ValidateIntent empty = (%q, %v), want (\"\", nil)", got, err)
	}
	if _, err := ValidateIntent(strings.Repeat("a", 101), 100); !errors.Is(err, ErrIntentTooLong) {
		t.Errorf("ValidateIntent over limit error = %v, want ErrIntentTooLong", err)
	}
	// Rune length, not byte length.
	if _, err := ValidateIntent(strings.Repeat("ä", 100), 100); err != nil {
		t.Errorf("ValidateIntent 100 runes error = %v, want nil", err)
	}
	// Zero max disables the cap.
	if _, err := ValidateIntent(strings.Repeat("a", 500), 0); err != nil {
		t.Errorf("ValidateIntent uncapped error = %v, want nil", err)
	}
}

package location

import (
	"context"
	"errors"
)

// ErrPermissionDenied is surfaced when the device or deployment has no
// usable location. Terminal for the current request: the caller renders
// an error state and does not retry automatically.
var ErrPermissionDenied = errors.New("location permission denied")

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider supplies the coordinates to plan around. Implementations
// are external collaborators (device location services, a reverse
// proxy header, a fixed deployment site).
type Provider interface {
	Current(ctx context.Context) (Coordinates, error)
}

// Static returns a fixed coordinate pair, the default for a service
// deployment planning for one configured site.
type Static struct {
	Coords Coordinates
}

// NewStatic builds a Static provider for the given coordinates.
func NewStatic(lat, lon float64) *Static {
	return &Static{Coords: Coordinates{Latitude: lat, Longitude: lon}}
}

// Current returns the configured coordinates.
func (s *Static) Current(ctx context.Context) (Coordinates, error) {
	return s.Coords, nil
}

// Denied always reports ErrPermissionDenied. Stands in for a device
// whose location grant was refused.
type Denied struct{}

// Current returns ErrPermissionDenied unconditionally.
func (Denied) Current(ctx context.Context) (Coordinates, error) {
	return Coordinates{}, ErrPermissionDenied
}

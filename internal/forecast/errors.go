package forecast

import "errors"

// ErrMalformedInput is returned when the raw hourly series is internally
// inconsistent: parallel sequences of differing length, a non-finite
// temperature, or an unparseable timestamp.
var ErrMalformedInput = errors.New("malformed hourly series")

// ErrEmptyInput is returned when bucketing is given zero hours. Callers
// should treat it as "no forecast available", not a crash.
var ErrEmptyInput = errors.New("no hours to bucket")

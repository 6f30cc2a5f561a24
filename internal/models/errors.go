package models

import "errors"

// ErrInvalidMarkerTime is returned when a marker time is negative or not finite
var ErrInvalidMarkerTime = errors.New("marker time must be a finite, non-negative number of seconds")

package geocoder

import "errors"

const (
	NotFoundMessage = "We couldn’t locate one of those places. Try a more specific name (e.g., ‘Majestic, Bengaluru’)."
	TooFarMessage   = "Those places seem extremely far apart. Please add city/district names for clarity."
)

// ErrNotFound is returned by Resolve when no tier and no fallback place matched
var ErrNotFound = errors.New("place not found")

// GeoError terminates a trip request; Message is safe to show to the traveller
type GeoError struct {
	Message string
}

func (e *GeoError) Error() string {
	return e.Message
}

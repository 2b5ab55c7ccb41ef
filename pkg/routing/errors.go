package routing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingKey = errors.New("tomtom api key missing")
	ErrNoRoute    = errors.New("no road route found")
)

const (
	MissingKeyReason = "TomTom API key missing."
	NoRouteReason    = "No road route found."
	ProviderReason   = "TomTom route error"
)

// RouteError means road data is unavailable for this trip; callers degrade rather than fail
type RouteError struct {
	Reason string
	Err    error
}

func (e *RouteError) Error() string {
	if e.Err == nil {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Reason, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

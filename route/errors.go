/*
errors.go - Error taxonomy for route resolution

PURPOSE:
  Normalizes every provider failure into a small, stable set of errors.
  Provider-specific payload shapes never leak past this package: callers
  match with errors.Is() and the HTTP boundary maps classes to statuses.

ERROR CATEGORIES:
  1. User-correctable - place not found, no route, distance out of range
  2. Upstream         - missing credential, provider down or rate-limited

USAGE:
  if errors.Is(err, route.ErrGeocodeNotFound) { ... }

SEE ALSO:
  - client.go: Produces these errors
  - api/handlers.go: Maps them to HTTP statuses
*/
package route

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrGeocodeNotFound is returned when a place name resolves to zero
	// results or to a feature without usable coordinates.
	ErrGeocodeNotFound = errors.New("place not found")

	// ErrRouteUnavailable is returned when the routing response contains no
	// extractable distance, or the distance is non-positive or non-finite.
	ErrRouteUnavailable = errors.New("route distance unavailable")

	// ErrDistanceOutOfRange is returned when a resolved or manual distance
	// exceeds the practical ceiling. This is a sanity guard against
	// country/continent-level geocoding mistakes, not a hard domain limit.
	ErrDistanceOutOfRange = errors.New("distance exceeds practical limit")

	// ErrUpstreamUnavailable is returned when the provider cannot be reached
	// at all: missing credential, transport failure, timeout, or a non-2xx
	// provider response (including rate limiting).
	ErrUpstreamUnavailable = errors.New("routing provider unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry upstream context for logging
// =============================================================================

// UpstreamError captures the provider's status and message for diagnostics.
// The detail is for internal logs only; it must never reach clients.
type UpstreamError struct {
	Status int    // HTTP status from the provider, 0 when unreachable
	Detail string // normalized provider message
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream failure (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream failure: %s", e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is correctable by the caller
// (bad place names, no route, implausible distance).
func IsClientError(err error) bool {
	return errors.Is(err, ErrGeocodeNotFound) ||
		errors.Is(err, ErrRouteUnavailable) ||
		errors.Is(err, ErrDistanceOutOfRange)
}

// IsUpstream returns true if the error is a provider-side failure.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

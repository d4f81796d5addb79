/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. Field names
  are part of the public contract of the original frontend and must not
  change (calc_id, pdf_url, distance_km, suggestions).

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - record/record.go: The record embedded in CalcResponse
*/
package api

import "github.com/olimpus/ecotrip/record"

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SuggestionDTO is one autocomplete entry.
type SuggestionDTO struct {
	Label string  `json:"label"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

// SuggestResponse wraps autocomplete results.
type SuggestResponse struct {
	Suggestions []SuggestionDTO `json:"suggestions"`
}

// DistanceRequest asks for the routed distance between two places.
type DistanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Profile     string `json:"profile,omitempty"`
}

// DistanceResponse carries the resolved distance in km (two decimals).
type DistanceResponse struct {
	DistanceKM float64 `json:"distance_km"`
}

// CalcRequest submits a calculation. Either origin+destination (routed) or
// distance_km (manual) must be present. "transport" is a legacy alias of
// "mode" kept for older frontend builds.
type CalcRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Mode        string   `json:"mode"`
	Transport   string   `json:"transport,omitempty"`
	DistanceKM  *float64 `json:"distance_km,omitempty"`
}

// CalcResponse returns the stored record plus where to fetch its receipt.
type CalcResponse struct {
	CalcID string                   `json:"calc_id"`
	PDFURL string                   `json:"pdf_url"`
	Record record.CalculationRecord `json:"record"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the standard error response. Only a safe human-readable
// message is exposed; internal detail stays in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

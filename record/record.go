/*
record.go - Calculation record model

PURPOSE:
  Defines CalculationRecord, the unit of persistence of this system.
  A record is created exactly once per successful calculation and is
  immutable afterwards: a complete, self-contained, replayable snapshot.
  Regenerating its receipt uses only the fields stored here, never the
  live factor tables.

LIFECYCLE:
  created once -> stored under a fresh id -> read-only forever.
  No update path, no deletion, no expiry (MVP scope: process lifetime).

SEE ALSO:
  - store.go: Store interface and errors
  - id.go: Id generation
  - receipt/pdf.go: Renders a record into a PDF
*/
package record

import (
	"time"

	"github.com/olimpus/ecotrip/emission"
)

// ProviderManual labels records whose distance was supplied by the caller
// instead of being resolved through the routing provider.
const ProviderManual = "manual"

// ProviderORS labels records resolved through OpenRouteService.
const ProviderORS = "ORS"

// Inputs captures what the caller asked for. Origin and destination are
// absent when the distance was supplied manually.
type Inputs struct {
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination,omitempty"`
	DistanceKM  float64 `json:"distance_km"`
	Mode        string  `json:"mode"`
	ModeLabel   string  `json:"mode_label"`
}

// CalculationRecord is the persisted snapshot of one calculation.
type CalculationRecord struct {
	ID             string            `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	Provider       string            `json:"provider"`
	Inputs         Inputs            `json:"inputs"`
	Results        emission.Results  `json:"results"`
	Factors        emission.Snapshot `json:"factors"`
	FactorsVersion string            `json:"factors_version"`
}

// Clone returns an independent copy of the record. Stores hand out clones
// so callers can never mutate stored state.
func (r CalculationRecord) Clone() CalculationRecord {
	clone := r
	clone.Factors = r.Factors.Clone()
	return clone
}

/*
factors.go - Emission factor and credit price tables

PURPOSE:
  Defines the constant tables that drive every calculation:
  - FactorTable: kg of CO2 emitted per km, per transport mode
  - CreditPriceTable: BRL price range for one carbon credit (1000 kg CO2)

  Tables are loaded once at process start and passed explicitly to the
  model. Records take a Snapshot copy at creation time, so historical
  receipts never change if the live tables are edited later.

VERSIONING:
  FactorsVersion labels the table revision. Bump it whenever a factor or
  price changes; the label is stored inside every record's snapshot.

SEE ALSO:
  - model.go: Compute uses these tables
  - record/record.go: Snapshot is embedded in CalculationRecord
*/
package emission

// =============================================================================
// TRANSPORT MODES
// =============================================================================

// Mode identifies a transport method. The set is closed; unknown keys are
// rejected at the boundary, never silently defaulted.
type Mode string

const (
	ModeBike  Mode = "bike"
	ModeBus   Mode = "bus"
	ModeCar   Mode = "car"
	ModeTruck Mode = "truck"
)

// FactorTable maps a transport mode to its emission factor in kg CO2 per km.
type FactorTable map[Mode]float64

// CreditPriceTable holds the BRL price range for one carbon credit.
// One credit offsets 1000 kg of CO2.
type CreditPriceTable struct {
	Base float64 `json:"base"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// FactorsVersion labels the current revision of the tables below.
const FactorsVersion = "2025.12.26"

// DefaultFactors returns the emission factor table in effect for this build.
func DefaultFactors() FactorTable {
	return FactorTable{
		ModeBike:  0.0,
		ModeBus:   0.089,
		ModeCar:   0.12,
		ModeTruck: 0.96,
	}
}

// DefaultCreditPrice returns the credit price table in effect for this build.
func DefaultCreditPrice() CreditPriceTable {
	return CreditPriceTable{Base: 45, Min: 25, Max: 85}
}

// Label returns the display label for a mode. Unknown modes fall back to the
// raw key so display code never renders an empty string.
func Label(mode Mode) string {
	if l, ok := modeLabels[mode]; ok {
		return l
	}
	return string(mode)
}

var modeLabels = map[Mode]string{
	ModeBike:  "Bicicleta",
	ModeBus:   "Ônibus",
	ModeCar:   "Carro",
	ModeTruck: "Caminhão",
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is a deep copy of the tables in effect when a record was created.
// It is stored verbatim inside the record so a receipt can always be
// regenerated from the record alone.
type Snapshot struct {
	KgPerKM     map[string]float64 `json:"kg_per_km"`
	CreditPrice CreditPriceTable   `json:"credit_price"`
}

// NewSnapshot copies the given tables into a Snapshot.
func NewSnapshot(factors FactorTable, prices CreditPriceTable) Snapshot {
	kg := make(map[string]float64, len(factors))
	for mode, f := range factors {
		kg[string(mode)] = f
	}
	return Snapshot{KgPerKM: kg, CreditPrice: prices}
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	kg := make(map[string]float64, len(s.KgPerKM))
	for k, v := range s.KgPerKM {
		kg[k] = v
	}
	return Snapshot{KgPerKM: kg, CreditPrice: s.CreditPrice}
}

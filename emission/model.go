/*
model.go - Pure emission and credit cost model

PURPOSE:
  Computes every derived field of a calculation from (mode, distance) and
  the active tables. Pure and deterministic: no I/O, no clock, no globals.

PRECISION:
  Intermediate math uses decimal.Decimal to avoid compounding float error.
  Rounding happens exactly once, when the Results snapshot is built:
  - 2 decimals for mass (kg), currency (BRL) and percentage
  - 4 decimals for credit count

BASELINE:
  Every calculation is compared against the car baseline. When the car
  factor is zero the percentage is defined as 0, never NaN or Inf.

SEE ALSO:
  - factors.go: FactorTable, CreditPriceTable
  - api/handlers.go: calls Compute after validating input
*/
package emission

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidMode is returned when a mode is not a key of the factor table.
// Use with errors.Is().
var ErrInvalidMode = errors.New("invalid transport mode")

// InvalidModeError carries the rejected mode key.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid transport mode: %q", e.Mode)
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}

// Results holds the derived fields of a calculation. All values are rounded
// for storage/display and never recomputed after record creation.
type Results struct {
	EmissionKG    float64 `json:"emission_kg"`
	CarEmissionKG float64 `json:"car_emission_kg"`
	DeltaVsCarKG  float64 `json:"delta_vs_car_kg"`
	VsCarPct      float64 `json:"vs_car_pct"`
	CreditsNeeded float64 `json:"credits_needed"`
	CostBaseBRL   float64 `json:"cost_base_brl"`
	CostMinBRL    float64 `json:"cost_min_brl"`
	CostMaxBRL    float64 `json:"cost_max_brl"`
}

// kg of CO2 offset by one carbon credit.
var kgPerCredit = decimal.NewFromInt(1000)

// Compute derives all result fields for the given mode and distance.
// Returns InvalidModeError when mode is not in the factor table.
func Compute(mode Mode, distanceKM float64, factors FactorTable, prices CreditPriceTable) (Results, error) {
	factor, ok := factors[mode]
	if !ok {
		return Results{}, &InvalidModeError{Mode: mode}
	}

	km := decimal.NewFromFloat(distanceKM)
	emission := km.Mul(decimal.NewFromFloat(factor))
	car := km.Mul(decimal.NewFromFloat(factors[ModeCar]))
	delta := emission.Sub(car)

	// Baseline-zero guard: percentage is 0 by definition, never NaN/Inf.
	pct := decimal.Zero
	if car.IsPositive() {
		pct = emission.Div(car).Mul(decimal.NewFromInt(100))
	}

	credits := emission.Div(kgPerCredit)

	return Results{
		EmissionKG:    round2(emission),
		CarEmissionKG: round2(car),
		DeltaVsCarKG:  round2(delta),
		VsCarPct:      round2(pct),
		CreditsNeeded: round4(credits),
		CostBaseBRL:   round2(credits.Mul(decimal.NewFromFloat(prices.Base))),
		CostMinBRL:    round2(credits.Mul(decimal.NewFromFloat(prices.Min))),
		CostMaxBRL:    round2(credits.Mul(decimal.NewFromFloat(prices.Max))),
	}, nil
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round4(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}

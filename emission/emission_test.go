package emission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olimpus/ecotrip/emission"
)

// =============================================================================
// REFERENCE SCENARIO
// =============================================================================

func TestCompute_BusScenario(t *testing.T) {
	// GIVEN: 500 km by bus (factor 0.089) against the car baseline (0.12)
	// WHEN: Computing results with the default credit price (base 45)
	// THEN: Every derived field matches the documented reference values

	res, err := emission.Compute(emission.ModeBus, 500.00,
		emission.DefaultFactors(), emission.DefaultCreditPrice())
	require.NoError(t, err)

	assert.Equal(t, 44.50, res.EmissionKG)
	assert.Equal(t, 60.00, res.CarEmissionKG)
	assert.Equal(t, -15.50, res.DeltaVsCarKG)
	assert.Equal(t, 74.17, res.VsCarPct)
	assert.Equal(t, 0.0445, res.CreditsNeeded)
	assert.Equal(t, 2.00, res.CostBaseBRL)
	assert.Equal(t, 1.11, res.CostMinBRL)
	assert.Equal(t, 3.78, res.CostMaxBRL)
}

func TestCompute_Linearity(t *testing.T) {
	// Emission, credits and all three costs are linear in distance.
	factors := emission.DefaultFactors()
	prices := emission.DefaultCreditPrice()

	for _, km := range []float64{0, 1, 10, 250, 6000} {
		res, err := emission.Compute(emission.ModeTruck, km, factors, prices)
		require.NoError(t, err)

		assert.InDelta(t, km*0.96, res.EmissionKG, 0.005, "emission at %v km", km)
		assert.InDelta(t, res.EmissionKG/1000, res.CreditsNeeded, 0.00005, "credits at %v km", km)
		assert.InDelta(t, km*0.96/1000*45, res.CostBaseBRL, 0.005, "base cost at %v km", km)
		assert.InDelta(t, km*0.96/1000*25, res.CostMinBRL, 0.005, "min cost at %v km", km)
		assert.InDelta(t, km*0.96/1000*85, res.CostMaxBRL, 0.005, "max cost at %v km", km)
	}
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestCompute_CarBaselineZero_PercentageIsZero(t *testing.T) {
	// GIVEN: A factor table where the car baseline is zero
	// WHEN: Computing for a positive distance
	// THEN: vs_car_pct is exactly 0, never NaN or Inf

	factors := emission.FactorTable{
		emission.ModeBus: 0.089,
		emission.ModeCar: 0.0,
	}

	res, err := emission.Compute(emission.ModeBus, 120, factors, emission.DefaultCreditPrice())
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.VsCarPct)
	assert.Equal(t, 0.0, res.CarEmissionKG)
}

func TestCompute_ZeroDistance(t *testing.T) {
	res, err := emission.Compute(emission.ModeCar, 0,
		emission.DefaultFactors(), emission.DefaultCreditPrice())
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.EmissionKG)
	assert.Equal(t, 0.0, res.CreditsNeeded)
	assert.Equal(t, 0.0, res.CostBaseBRL)
	// Zero car emission means the percentage guard applies here too.
	assert.Equal(t, 0.0, res.VsCarPct)
}

func TestCompute_UnknownMode_Rejected(t *testing.T) {
	_, err := emission.Compute("rocket", 10,
		emission.DefaultFactors(), emission.DefaultCreditPrice())

	assert.Error(t, err)
	assert.ErrorIs(t, err, emission.ErrInvalidMode)

	var modeErr *emission.InvalidModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, emission.Mode("rocket"), modeErr.Mode)
}

func TestCompute_BikeEmitsNothing(t *testing.T) {
	res, err := emission.Compute(emission.ModeBike, 42,
		emission.DefaultFactors(), emission.DefaultCreditPrice())
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.EmissionKG)
	assert.Equal(t, 0.0, res.VsCarPct)
	assert.InDelta(t, -5.04, res.DeltaVsCarKG, 0.005)
}

// =============================================================================
// SNAPSHOT SEMANTICS
// =============================================================================

func TestSnapshot_IsACopy(t *testing.T) {
	// GIVEN: A snapshot taken from the live tables
	// WHEN: The live table is mutated afterwards
	// THEN: The snapshot is unaffected

	factors := emission.DefaultFactors()
	snap := emission.NewSnapshot(factors, emission.DefaultCreditPrice())

	factors[emission.ModeBus] = 9.99

	assert.Equal(t, 0.089, snap.KgPerKM["bus"])
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	snap := emission.NewSnapshot(emission.DefaultFactors(), emission.DefaultCreditPrice())
	clone := snap.Clone()

	clone.KgPerKM["car"] = 1.0

	assert.Equal(t, 0.12, snap.KgPerKM["car"])
}

func TestLabel_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "Ônibus", emission.Label(emission.ModeBus))
	assert.Equal(t, "hoverboard", emission.Label("hoverboard"))
}

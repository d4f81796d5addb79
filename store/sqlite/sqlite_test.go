package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olimpus/ecotrip/emission"
	"github.com/olimpus/ecotrip/record"
	"github.com/olimpus/ecotrip/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id string) record.CalculationRecord {
	return record.CalculationRecord{
		ID:        id,
		CreatedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
		Provider:  record.ProviderManual,
		Inputs: record.Inputs{
			DistanceKM: 150.00,
			Mode:       "truck",
			ModeLabel:  "Caminhão",
		},
		Results: emission.Results{
			EmissionKG:    144.00,
			CarEmissionKG: 18.00,
			DeltaVsCarKG:  126.00,
			VsCarPct:      800.00,
			CreditsNeeded: 0.144,
			CostBaseBRL:   6.48,
			CostMinBRL:    3.60,
			CostMaxBRL:    12.24,
		},
		Factors:        emission.NewSnapshot(emission.DefaultFactors(), emission.DefaultCreditPrice()),
		FactorsVersion: emission.FactorsVersion,
	}
}

func TestSQLite_CreateGetRoundTrip(t *testing.T) {
	// GIVEN: A record persisted to SQLite
	// WHEN: Loading it back by id
	// THEN: The decoded record matches field for field

	store := newTestStore(t)
	ctx := context.Background()

	want := testRecord(record.NewID())
	require.NoError(t, store.Create(ctx, want))

	got, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSQLite_GetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "OL-DOESNOTEXIST")

	assert.ErrorIs(t, err, record.ErrRecordNotFound)
}

func TestSQLite_DuplicateID_Rejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("OL-CCCCCCCCCCCC")
	require.NoError(t, store.Create(ctx, rec))

	err := store.Create(ctx, rec)
	assert.ErrorIs(t, err, record.ErrDuplicateID)
}

package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olimpus/ecotrip/emission"
	"github.com/olimpus/ecotrip/record"
)

func routedRecord() *record.CalculationRecord {
	return &record.CalculationRecord{
		ID:        "OL-3F9A01C2B7D4",
		CreatedAt: time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
		Provider:  record.ProviderORS,
		Inputs: record.Inputs{
			Origin:      "São Paulo, SP, Brazil",
			Destination: "Rio de Janeiro, RJ, Brazil",
			DistanceKM:  432.50,
			Mode:        "bus",
			ModeLabel:   "Ônibus",
		},
		Results: emission.Results{
			EmissionKG:    38.49,
			CarEmissionKG: 51.90,
			DeltaVsCarKG:  -13.41,
			VsCarPct:      74.17,
			CreditsNeeded: 0.0385,
			CostBaseBRL:   1.73,
			CostMinBRL:    0.96,
			CostMaxBRL:    3.27,
		},
		Factors:        emission.NewSnapshot(emission.DefaultFactors(), emission.DefaultCreditPrice()),
		FactorsVersion: emission.FactorsVersion,
	}
}

func manualRecord() *record.CalculationRecord {
	rec := routedRecord()
	rec.ID = "OL-AA00BB11CC22"
	rec.Provider = record.ProviderManual
	rec.Inputs.Origin = ""
	rec.Inputs.Destination = ""
	return rec
}

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(routedRecord(), &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output must be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestRender_ManualRecord_NoError(t *testing.T) {
	// Absent origin/destination must render as placeholders, not fail.
	var buf bytes.Buffer
	require.NoError(t, Render(manualRecord(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_Idempotent(t *testing.T) {
	// GIVEN: One stored record
	// WHEN: Rendering it twice
	// THEN: The outputs are byte-identical (pure function of the record)

	rec := routedRecord()

	var first, second bytes.Buffer
	require.NoError(t, Render(rec, &first))
	require.NoError(t, Render(rec, &second))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

// =============================================================================
// FACTOR TREE
// =============================================================================

func TestSnapshotEntries_KnownGroupsFirst(t *testing.T) {
	snap := emission.NewSnapshot(emission.DefaultFactors(), emission.DefaultCreditPrice())

	entries := snapshotEntries(snap)

	require.Len(t, entries, 2)
	assert.Equal(t, "kg_per_km", entries[0].key)
	assert.Equal(t, "credit_price", entries[1].key)
	assert.True(t, entries[0].node.group)
	assert.True(t, entries[1].node.group)
}

func TestBuildNode_NestedGroupsSorted(t *testing.T) {
	node := buildNode(map[string]any{
		"zeta": 1.5,
		"alpha": map[string]any{
			"inner": "x",
		},
	})

	require.True(t, node.group)
	require.Len(t, node.entries, 2)
	assert.Equal(t, "alpha", node.entries[0].key)
	assert.True(t, node.entries[0].node.group)
	assert.Equal(t, "zeta", node.entries[1].key)
	assert.Equal(t, "1.5", node.entries[1].node.scalar)
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "0.089", formatScalar(0.089))
	assert.Equal(t, "45", formatScalar(45.0))
	assert.Equal(t, "—", formatScalar(nil))
	assert.Equal(t, "—", formatScalar(""))
	assert.Equal(t, "true", formatScalar(true))
	assert.Equal(t, "abc", formatScalar("abc"))
}

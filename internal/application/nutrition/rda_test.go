package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise/internal/domain/food"
)

func TestToMilligrams(t *testing.T) {
	cases := []struct {
		unit   string
		amount float64
		want   float64
		ok     bool
	}{
		{"mg", 250, 250, true},
		{"µg", 900, 0.9, true},
		{"mcg", 900, 0.9, true},
		{"ug", 900, 0.9, true},
		{"g", 1.5, 1500, true},
		{"IU", 400, 0, false},
		{"", 10, 0, false},
	}

	for _, tc := range cases {
		got, ok := ToMilligrams(tc.amount, tc.unit)
		assert.Equal(t, tc.ok, ok, "unit %q", tc.unit)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "unit %q", tc.unit)
		}
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	for _, unit := range []string{"mg", "µg", "g"} {
		mg, ok := ToMilligrams(42, unit)
		require.True(t, ok)
		back, ok := FromMilligrams(mg, unit)
		require.True(t, ok)
		assert.InDelta(t, 42, back, 1e-9, "unit %q", unit)
	}
}

func TestClassifyBands(t *testing.T) {
	assert.Equal(t, food.RDADeficient, Classify(0))
	assert.Equal(t, food.RDADeficient, Classify(49.9))
	assert.Equal(t, food.RDALow, Classify(50))
	assert.Equal(t, food.RDALow, Classify(99.9))
	assert.Equal(t, food.RDAAdequate, Classify(100))
	assert.Equal(t, food.RDAAdequate, Classify(200))
	assert.Equal(t, food.RDAExcess, Classify(200.1))
}

func TestLookupRDA(t *testing.T) {
	rda, ok := LookupRDA(NutrientVitaminC)
	require.True(t, ok)
	assert.Equal(t, 90.0, rda.Amount)
	assert.Equal(t, "mg", rda.Unit)

	_, ok = LookupRDA(NutrientCaffeine)
	assert.False(t, ok)
}

func TestVitaminMineralSetsDisjoint(t *testing.T) {
	for id := range rdaTable {
		assert.False(t, IsVitamin(id) && IsMineral(id), "nutrient %d in both sets", id)
		assert.True(t, IsVitamin(id) || IsMineral(id), "nutrient %d in neither set", id)
	}
}

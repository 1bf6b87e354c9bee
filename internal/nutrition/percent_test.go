package nutrition

import (
	"math"
	"testing"

	"nutridiary/internal/models"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestPercentOfCorrectness(t *testing.T) {
	// 50 g carbs × 4 kcal/g = 200 kcal = 100% of a 200 kcal target.
	p, ok := PercentOf(f(50), 4, 200)
	assert.True(t, ok)
	assert.Equal(t, 100.0, p)

	// 10 g fat × 9 kcal/g against a 600 kcal fat slice.
	p, ok = PercentOf(f(10), 9, 600)
	assert.True(t, ok)
	assert.Equal(t, 15.0, p)

	// Absolute reference: 1150 mg sodium of a 2300 mg daily value.
	p, ok = PercentOf(f(1150), 1, 2300)
	assert.True(t, ok)
	assert.Equal(t, 50.0, p)
}

func TestPercentOfSentinel(t *testing.T) {
	tests := []struct {
		name   string
		value  *float64
		factor float64
		target float64
	}{
		{"zero target", f(50), 4, 0},
		{"nil value", nil, 4, 200},
		{"NaN value", f(math.NaN()), 4, 200},
		{"infinite value", f(math.Inf(1)), 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := PercentOf(tt.value, tt.factor, tt.target)
			assert.False(t, ok)
			assert.Zero(t, p)
			assert.Equal(t, NotApplicable, DisplayPercent(tt.value, tt.factor, tt.target))
		})
	}
}

func TestDisplayPercent(t *testing.T) {
	assert.Equal(t, "100", DisplayPercent(f(50), 4, 200))
	assert.Equal(t, "12.5", DisplayPercent(f(3.5), 1, 28))
}

func TestMicroReferenceCoversEveryField(t *testing.T) {
	m := &models.MicroNutrients{}
	for _, key := range MicroOrder {
		measure, ok := MicroReference[key]
		assert.True(t, ok, "missing reference for %s", key)
		assert.Contains(t, []string{"g", "mg", "mcg"}, measure.Unit)
		assert.NotNil(t, MicroValue(m, key), "no accessor for %s", key)
	}
	assert.Len(t, MicroOrder, len(MicroReference))
}

func TestMicroReferenceValues(t *testing.T) {
	assert.Equal(t, 28.0, MicroReference["dietaryFiber"].DailyReference)
	assert.Equal(t, 300.0, MicroReference["cholesterol"].DailyReference)
	assert.Equal(t, 2300.0, MicroReference["sodium"].DailyReference)
}

func TestMicroValueNilProfile(t *testing.T) {
	assert.Nil(t, MicroValue(nil, "sodium"))
	assert.Nil(t, MicroValue(&models.MicroNutrients{}, "unknown"))
}

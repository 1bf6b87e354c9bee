package nutrition

import (
	"math"
	"testing"

	"nutridiary/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleProfile() models.NutrientProfile {
	p := models.NutrientProfile{
		Macros:   models.MacroNutrients{Carbs: 20, Fats: 10, Protein: 5},
		Quantity: 100,
	}
	p.Calories = Calories(p.Macros)
	return p
}

func TestScalePortionChange(t *testing.T) {
	p := sampleProfile()
	assert.Equal(t, 190.0, p.Calories)

	scaled, err := Scale(p, 100, 150)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, scaled.Macros.Carbs)
	assert.Equal(t, 15.0, scaled.Macros.Fats)
	assert.Equal(t, 7.5, scaled.Macros.Protein)
	assert.Equal(t, 285.0, scaled.Calories)
	assert.Equal(t, 150.0, scaled.Quantity)
}

func TestScaleIdentity(t *testing.T) {
	for _, qty := range []float64{1, 50, 100, 333.33} {
		p := sampleProfile()
		p.Quantity = qty

		scaled, err := Scale(p, qty, qty)
		assert.NoError(t, err)
		assert.InDelta(t, p.Macros.Carbs, scaled.Macros.Carbs, 0.01)
		assert.InDelta(t, p.Macros.Fats, scaled.Macros.Fats, 0.01)
		assert.InDelta(t, p.Macros.Protein, scaled.Macros.Protein, 0.01)
		assert.InDelta(t, p.Calories, scaled.Calories, 0.01)
	}
}

func TestScaleComposability(t *testing.T) {
	p := sampleProfile()

	// Scaling 100 -> 150 -> 70 must match scaling 100 -> 70 directly.
	step1, err := Scale(p, 100, 150)
	assert.NoError(t, err)
	step2, err := Scale(step1, 150, 70)
	assert.NoError(t, err)
	direct, err := Scale(p, 100, 70)
	assert.NoError(t, err)

	assert.InDelta(t, direct.Macros.Carbs, step2.Macros.Carbs, 0.01)
	assert.InDelta(t, direct.Macros.Fats, step2.Macros.Fats, 0.01)
	assert.InDelta(t, direct.Macros.Protein, step2.Macros.Protein, 0.01)
	assert.InDelta(t, direct.Calories, step2.Calories, 0.01)
}

func TestScaleToZeroIsTombstone(t *testing.T) {
	scaled, err := Scale(sampleProfile(), 100, 0)
	assert.NoError(t, err)
	assert.Zero(t, scaled.Macros.Carbs)
	assert.Zero(t, scaled.Macros.Fats)
	assert.Zero(t, scaled.Macros.Protein)
	assert.Zero(t, scaled.Calories)
	assert.Zero(t, scaled.Quantity)
}

func TestScaleInvalidQuantity(t *testing.T) {
	tests := []struct {
		name   string
		oldQty float64
		newQty float64
	}{
		{"negative new quantity", 100, -1},
		{"NaN new quantity", 100, math.NaN()},
		{"infinite new quantity", 100, math.Inf(1)},
		{"zero old quantity", 0, 50},
		{"negative old quantity", -100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scale(sampleProfile(), tt.oldQty, tt.newQty)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		})
	}
}

func TestScaleMicronutrients(t *testing.T) {
	p := sampleProfile()
	p.Micros = &models.MicroNutrients{DietaryFiber: 2.5, Sodium: 120, Cholesterol: 30}

	scaled, err := Scale(p, 100, 200)
	assert.NoError(t, err)
	assert.NotNil(t, scaled.Micros)
	assert.Equal(t, 5.0, scaled.Micros.DietaryFiber)
	assert.Equal(t, 240.0, scaled.Micros.Sodium)
	assert.Equal(t, 60.0, scaled.Micros.Cholesterol)

	// The input profile is untouched.
	assert.Equal(t, 2.5, p.Micros.DietaryFiber)
}

func TestScaleRoundsToTwoDecimals(t *testing.T) {
	p := models.NutrientProfile{
		Macros:   models.MacroNutrients{Carbs: 10, Fats: 1, Protein: 1},
		Quantity: 3,
	}
	p.Calories = Calories(p.Macros)

	scaled, err := Scale(p, 3, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3.33, scaled.Macros.Carbs)
	assert.Equal(t, 0.33, scaled.Macros.Fats)
	assert.Equal(t, 0.33, scaled.Macros.Protein)
}

package nutrition

import (
	"testing"

	"nutridiary/internal/models"

	"github.com/stretchr/testify/assert"
)

func entry(qty, calories, carbs, fats, protein float64) models.MealFoodEntry {
	return models.MealFoodEntry{
		Quantity: qty,
		Calories: calories,
		Macros:   models.MacroNutrients{Carbs: carbs, Fats: fats, Protein: protein},
	}
}

func TestAggregateFoodsEmpty(t *testing.T) {
	assert.Equal(t, models.MealMacroTotals{}, AggregateFoods(nil))
	assert.Equal(t, models.MealMacroTotals{}, AggregateFoods([]models.MealFoodEntry{}))
}

func TestAggregateFoodsExcludesTombstones(t *testing.T) {
	entries := []models.MealFoodEntry{
		entry(100, 200, 25, 5, 10),
		entry(0, 150, 20, 4, 8), // removed: must not contribute
	}
	totals := AggregateFoods(entries)
	assert.Equal(t, models.MealMacroTotals{Calories: 200, Carbs: 25, Fats: 5, Protein: 10}, totals)
}

func TestAggregateFoodsTombstoneOnly(t *testing.T) {
	// Stored nutrient values are irrelevant once quantity is 0.
	totals := AggregateFoods([]models.MealFoodEntry{entry(0, 999, 99, 99, 99)})
	assert.Equal(t, models.MealMacroTotals{}, totals)
}

func TestAggregateFoodsExcludesUnavailable(t *testing.T) {
	gone := entry(100, 150, 20, 4, 8)
	gone.Unavailable = true
	entries := []models.MealFoodEntry{entry(100, 200, 25, 5, 10), gone}
	totals := AggregateFoods(entries)
	assert.Equal(t, models.MealMacroTotals{Calories: 200, Carbs: 25, Fats: 5, Protein: 10}, totals)
}

func TestAggregateFoodsAdditivity(t *testing.T) {
	a := []models.MealFoodEntry{entry(100, 190, 20, 10, 5), entry(50, 95, 10, 5, 2.5)}
	b := []models.MealFoodEntry{entry(80, 120, 15, 4, 6)}

	sumA := AggregateFoods(a)
	sumB := AggregateFoods(b)
	combined := AggregateFoods(append(append([]models.MealFoodEntry{}, a...), b...))

	assert.InDelta(t, sumA.Calories+sumB.Calories, combined.Calories, 0.01)
	assert.InDelta(t, sumA.Carbs+sumB.Carbs, combined.Carbs, 0.01)
	assert.InDelta(t, sumA.Fats+sumB.Fats, combined.Fats, 0.01)
	assert.InDelta(t, sumA.Protein+sumB.Protein, combined.Protein, 0.01)
}

func TestAggregateFoodsOrderIndependence(t *testing.T) {
	entries := []models.MealFoodEntry{
		entry(100, 190, 20, 10, 5),
		entry(50, 95, 10, 5, 2.5),
		entry(80, 120, 15, 4, 6),
	}
	reversed := []models.MealFoodEntry{entries[2], entries[1], entries[0]}
	assert.Equal(t, AggregateFoods(entries), AggregateFoods(reversed))
}

func TestAggregateMeals(t *testing.T) {
	meals := []models.Meal{
		{Totals: models.MealMacroTotals{Calories: 300, Carbs: 40, Fats: 8, Protein: 15}},
		{Totals: models.MealMacroTotals{Calories: 450.5, Carbs: 50.25, Fats: 12, Protein: 30}},
		{}, // empty meal contributes nothing
	}
	totals := AggregateMeals(meals)
	assert.Equal(t, models.MealMacroTotals{Calories: 750.5, Carbs: 90.25, Fats: 20, Protein: 45}, totals)
}

func TestDisplayTotalsRoundsCaloriesToInteger(t *testing.T) {
	totals := DisplayTotals(models.MealMacroTotals{Calories: 750.5, Carbs: 90.25, Fats: 20.75, Protein: 45})
	assert.Equal(t, 751.0, totals.Calories)
	assert.Equal(t, 90.25, totals.Carbs) // grams keep 2 decimals
	assert.Equal(t, 20.75, totals.Fats)
}

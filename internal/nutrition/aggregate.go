package nutrition

import (
	"math"

	"nutridiary/internal/models"
)

// AggregateFoods sums calories and macros over a meal's entries,
// excluding tombstones (quantity 0) regardless of their stored values,
// and entries flagged unavailable because their source food is gone.
// An empty list yields all-zero totals. The sum is order-independent;
// display order is carried separately by MealPosition.
func AggregateFoods(entries []models.MealFoodEntry) models.MealMacroTotals {
	var t models.MealMacroTotals
	for i := range entries {
		if entries[i].Tombstone() || entries[i].Unavailable {
			continue
		}
		t.Calories += entries[i].Calories
		t.Carbs += entries[i].Macros.Carbs
		t.Fats += entries[i].Macros.Fats
		t.Protein += entries[i].Macros.Protein
	}
	return roundTotals(t)
}

// AggregateMeals rolls meal totals up into day totals.
func AggregateMeals(meals []models.Meal) models.MealMacroTotals {
	var t models.MealMacroTotals
	for i := range meals {
		t.Calories += meals[i].Totals.Calories
		t.Carbs += meals[i].Totals.Carbs
		t.Fats += meals[i].Totals.Fats
		t.Protein += meals[i].Totals.Protein
	}
	return roundTotals(t)
}

// DisplayTotals prepares day-level totals for top-level display:
// calories round to the nearest whole number, grams keep 2 decimals.
func DisplayTotals(t models.MealMacroTotals) models.MealMacroTotals {
	t.Calories = math.Round(t.Calories)
	return t
}

func roundTotals(t models.MealMacroTotals) models.MealMacroTotals {
	t.Calories = Round2(t.Calories)
	t.Carbs = Round2(t.Carbs)
	t.Fats = Round2(t.Fats)
	t.Protein = Round2(t.Protein)
	return t
}

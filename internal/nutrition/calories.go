// Package nutrition is the consolidated recalculation engine: portion
// scaling, calorie derivation, meal/day aggregation and percent-of-goal
// comparison. Every function is pure and safe to call from any
// goroutine; the UI and persistence layers call these instead of
// reimplementing the math.
package nutrition

import (
	"math"

	"nutridiary/internal/models"
)

// Energy density of each macronutrient in kcal per gram.
const (
	KcalPerGramCarbs   = 4
	KcalPerGramProtein = 4
	KcalPerGramFats    = 9
)

// Round2 rounds to 2 decimal places (half away from zero). Every scaled
// or aggregated value passes through this so repeated edits cannot
// accumulate floating-point drift.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// Calories derives the calorie value of a macro set. Negative inputs
// produce negative output; non-negativity is validated at input-edit
// time, not here.
func Calories(m models.MacroNutrients) float64 {
	return Round2(KcalPerGramCarbs*m.Carbs + KcalPerGramProtein*m.Protein + KcalPerGramFats*m.Fats)
}

package nutrition

import (
	"math"
	"strconv"
)

// NotApplicable is the display sentinel for a percentage that cannot be
// computed: missing value or zero daily target.
const NotApplicable = "**"

// PercentOf expresses a nutrient amount as a percentage of a daily
// target. unitFactor converts the raw amount into calories before the
// comparison (9 for fat grams, 4 for carb/protein grams, 1 for
// nutrients compared against an absolute reference such as sodium).
//
// The second return is false when value is nil, not finite, or the
// target is 0; callers then display NotApplicable. This function never
// returns NaN or Inf.
func PercentOf(value *float64, unitFactor, dailyTarget float64) (float64, bool) {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) || dailyTarget == 0 {
		return 0, false
	}
	return Round2(*value * unitFactor / dailyTarget * 100), true
}

// DisplayPercent formats PercentOf for UI rows, using the "**" sentinel
// when the percentage is not computable.
func DisplayPercent(value *float64, unitFactor, dailyTarget float64) string {
	p, ok := PercentOf(value, unitFactor, dailyTarget)
	if !ok {
		return NotApplicable
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}

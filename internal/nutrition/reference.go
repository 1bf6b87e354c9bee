package nutrition

import "nutridiary/internal/models"

// MicroMeasure fixes the display unit and absolute daily reference of a
// micronutrient. A DailyReference of 0 means the nutrient has no
// absolute reference: either none exists (ash) or the target is derived
// from the user's calorie goals by the caller (the fat subtypes compare
// against the fat-calorie slice with unit factor 9).
type MicroMeasure struct {
	Label          string
	Unit           string // "g", "mg" or "mcg", fixed per field
	DailyReference float64
}

// MicroReference enumerates every micronutrient field with its unit and
// daily reference value. These are the actual references (fiber 28 g,
// cholesterol 300 mg, sodium 2300 mg, and standard values for the
// rest); a percentage row falls back to "**" where the reference is 0.
var MicroReference = map[string]MicroMeasure{
	"saturatedFats":       {"Gorduras Saturadas", "g", 0},
	"monounsaturatedFats": {"Gorduras Monoinsaturadas", "g", 0},
	"polyunsaturatedFats": {"Gorduras Poliinsaturadas", "g", 0},
	"dietaryFiber":        {"Fibras Alimentares", "g", 28},
	"ash":                 {"Cinzas", "g", 0},
	"calcium":             {"Cálcio", "mg", 1300},
	"magnesium":           {"Magnésio", "mg", 420},
	"manganese":           {"Manganês", "mg", 2.3},
	"phosphorus":          {"Fósforo", "mg", 1250},
	"iron":                {"Ferro", "mg", 18},
	"sodium":              {"Sódio", "mg", 2300},
	"potassium":           {"Potássio", "mg", 4700},
	"copper":              {"Cobre", "mg", 0.9},
	"zinc":                {"Zinco", "mg", 11},
	"thiamine":            {"Tiamina", "mg", 1.2},
	"pyridoxine":          {"Piridoxina", "mg", 1.7},
	"niacin":              {"Niacina", "mg", 16},
	"riboflavin":          {"Riboflavina", "mg", 1.3},
	"vitaminC":            {"Vitamina C", "mg", 90},
	"RE":                  {"RE", "mcg", 900},
	"RAE":                 {"RAE", "mcg", 900},
	"cholesterol":         {"Colesterol", "mg", 300},
	"retinol":             {"Retinol", "mcg", 900},
}

// MicroOrder is the nutrition-facts display order.
var MicroOrder = []string{
	"saturatedFats", "monounsaturatedFats", "polyunsaturatedFats",
	"dietaryFiber", "cholesterol", "sodium",
	"ash", "calcium", "magnesium", "manganese", "phosphorus", "iron",
	"potassium", "copper", "zinc", "thiamine", "pyridoxine", "niacin",
	"riboflavin", "vitaminC", "RE", "RAE", "retinol",
}

// MicroValue looks a micronutrient up by its field key, returning nil
// when the profile has no detailed data.
func MicroValue(m *models.MicroNutrients, key string) *float64 {
	if m == nil {
		return nil
	}
	var v float64
	switch key {
	case "saturatedFats":
		v = m.SaturatedFats
	case "monounsaturatedFats":
		v = m.MonounsaturatedFats
	case "polyunsaturatedFats":
		v = m.PolyunsaturatedFats
	case "dietaryFiber":
		v = m.DietaryFiber
	case "ash":
		v = m.Ash
	case "calcium":
		v = m.Calcium
	case "magnesium":
		v = m.Magnesium
	case "manganese":
		v = m.Manganese
	case "phosphorus":
		v = m.Phosphorus
	case "iron":
		v = m.Iron
	case "sodium":
		v = m.Sodium
	case "potassium":
		v = m.Potassium
	case "copper":
		v = m.Copper
	case "zinc":
		v = m.Zinc
	case "thiamine":
		v = m.Thiamine
	case "pyridoxine":
		v = m.Pyridoxine
	case "niacin":
		v = m.Niacin
	case "riboflavin":
		v = m.Riboflavin
	case "vitaminC":
		v = m.VitaminC
	case "RE":
		v = m.RE
	case "RAE":
		v = m.RAE
	case "cholesterol":
		v = m.Cholesterol
	case "retinol":
		v = m.Retinol
	default:
		return nil
	}
	return &v
}

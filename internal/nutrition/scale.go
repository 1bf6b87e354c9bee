package nutrition

import (
	"errors"
	"fmt"
	"math"

	"nutridiary/internal/models"
)

// ErrInvalidQuantity rejects a quantity change that is negative or not a
// finite number. Callers must keep the prior value; nothing is applied.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Scale converts a nutrient profile from oldQuantity grams to
// newQuantity grams. Every macro and micro field is multiplied by
// newQuantity/oldQuantity and rounded to 2 decimals; calories are
// re-derived from the scaled macros rather than scaled directly, so
// calories and macros cannot drift apart across repeated edits.
//
// newQuantity 0 is valid and yields an all-zero profile: the tombstone
// state for a meal entry. oldQuantity must be positive; a non-positive
// value is a caller bug.
func Scale(p models.NutrientProfile, oldQuantity, newQuantity float64) (models.NutrientProfile, error) {
	if oldQuantity <= 0 {
		return models.NutrientProfile{}, fmt.Errorf("%w: old quantity must be positive, got %v", ErrInvalidQuantity, oldQuantity)
	}
	if newQuantity < 0 || math.IsNaN(newQuantity) || math.IsInf(newQuantity, 0) {
		return models.NutrientProfile{}, fmt.Errorf("%w: %v", ErrInvalidQuantity, newQuantity)
	}

	ratio := newQuantity / oldQuantity

	out := p
	out.Macros.Carbs = Round2(p.Macros.Carbs * ratio)
	out.Macros.Fats = Round2(p.Macros.Fats * ratio)
	out.Macros.Protein = Round2(p.Macros.Protein * ratio)
	out.Quantity = newQuantity
	out.Calories = Calories(out.Macros)

	if p.Micros != nil {
		m := scaleMicros(*p.Micros, ratio)
		out.Micros = &m
	}
	return out, nil
}

func scaleMicros(m models.MicroNutrients, ratio float64) models.MicroNutrients {
	return models.MicroNutrients{
		SaturatedFats:       Round2(m.SaturatedFats * ratio),
		MonounsaturatedFats: Round2(m.MonounsaturatedFats * ratio),
		PolyunsaturatedFats: Round2(m.PolyunsaturatedFats * ratio),
		DietaryFiber:        Round2(m.DietaryFiber * ratio),
		Ash:                 Round2(m.Ash * ratio),
		Calcium:             Round2(m.Calcium * ratio),
		Magnesium:           Round2(m.Magnesium * ratio),
		Manganese:           Round2(m.Manganese * ratio),
		Phosphorus:          Round2(m.Phosphorus * ratio),
		Iron:                Round2(m.Iron * ratio),
		Sodium:              Round2(m.Sodium * ratio),
		Potassium:           Round2(m.Potassium * ratio),
		Copper:              Round2(m.Copper * ratio),
		Zinc:                Round2(m.Zinc * ratio),
		Thiamine:            Round2(m.Thiamine * ratio),
		Pyridoxine:          Round2(m.Pyridoxine * ratio),
		Niacin:              Round2(m.Niacin * ratio),
		Riboflavin:          Round2(m.Riboflavin * ratio),
		VitaminC:            Round2(m.VitaminC * ratio),
		RE:                  Round2(m.RE * ratio),
		RAE:                 Round2(m.RAE * ratio),
		Cholesterol:         Round2(m.Cholesterol * ratio),
		Retinol:             Round2(m.Retinol * ratio),
	}
}

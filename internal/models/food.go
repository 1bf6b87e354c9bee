package models

import (
	"time"

	"gorm.io/gorm"
)

// MacroNutrients are grams of carbohydrate, fat and protein at the
// profile's reference quantity.
type MacroNutrients struct {
	Carbs   float64 `json:"carbs" example:"20"`
	Fats    float64 `json:"fats" example:"10"`
	Protein float64 `json:"protein" example:"5"`
}

// MicroNutrients is the fixed set of detailed nutrient fields carried by
// reference-table foods. The unit of each field never varies per instance:
// fats, fiber and ash are grams, minerals and vitamins are milligrams,
// retinol equivalents are micrograms.
type MicroNutrients struct {
	SaturatedFats       float64 `json:"saturatedFats"`
	MonounsaturatedFats float64 `json:"monounsaturatedFats"`
	PolyunsaturatedFats float64 `json:"polyunsaturatedFats"`
	DietaryFiber        float64 `json:"dietaryFiber"`
	Ash                 float64 `json:"ash"`
	Calcium             float64 `json:"calcium"`
	Magnesium           float64 `json:"magnesium"`
	Manganese           float64 `json:"manganese"`
	Phosphorus          float64 `json:"phosphorus"`
	Iron                float64 `json:"iron"`
	Sodium              float64 `json:"sodium"`
	Potassium           float64 `json:"potassium"`
	Copper              float64 `json:"copper"`
	Zinc                float64 `json:"zinc"`
	Thiamine            float64 `json:"thiamine"`
	Pyridoxine          float64 `json:"pyridoxine"`
	Niacin              float64 `json:"niacin"`
	Riboflavin          float64 `json:"riboflavin"`
	VitaminC            float64 `json:"vitaminC"`
	RE                  float64 `json:"RE"`
	RAE                 float64 `json:"RAE"`
	Cholesterol         float64 `json:"cholesterol"`
	Retinol             float64 `json:"retinol"`
}

// NutrientProfile is the nutrient content of a food at a specific
// reference quantity (grams). Calories are always derived from the
// macros (4 kcal/g carbs and protein, 9 kcal/g fats), never authored
// independently.
type NutrientProfile struct {
	Calories float64         `json:"calories" example:"190"`
	Macros   MacroNutrients  `gorm:"embedded" json:"macroNutrients"`
	Quantity float64         `json:"quantity" example:"100"`
	Micros   *MicroNutrients `gorm:"embedded;embeddedPrefix:micro_" json:"microNutrients,omitempty"`
}

// Food is a named, identified nutrient profile. Reference-table rows have
// UserID 0 and IsCustom false; they are seeded once and never mutated.
// Custom foods are user-authored and immutable once saved.
type Food struct {
	ID              uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID          uint           `gorm:"index" json:"user_id"`
	Title           string         `gorm:"not null" json:"title" example:"Arroz branco cozido"`
	IsCustom        bool           `json:"isCustom"`
	NutrientProfile `gorm:"embedded"`
}

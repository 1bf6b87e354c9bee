package models

import "time"

// MealMacroTotals is the derived aggregate over a food list. It is never
// edited directly; the aggregator recomputes it whenever a meal changes.
type MealMacroTotals struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Protein  float64 `json:"protein"`
}

// MealFoodEntry is one occurrence of a food consumed within a meal. It
// references the source Food by id but owns its own scaled profile: once
// added to a meal, quantity edits rescale from the entry's previous
// values, never from the original food's reference profile.
//
// Quantity 0 is the tombstone state: the entry is excluded from totals
// and deleted from storage on the next save.
type MealFoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	MealID    uint      `gorm:"index" json:"idMeal"`
	FoodID    uint      `gorm:"index" json:"idFood"`
	Title     string    `json:"title"`
	IsCustom  bool      `json:"isCustom"`

	Calories float64        `json:"calories"`
	Macros   MacroNutrients `gorm:"embedded" json:"macroNutrients"`
	Quantity float64        `json:"quantity"`

	// LocalID identifies the entry within an in-memory diary session so
	// edits made while a save is in flight can be folded back afterwards.
	LocalID uint64 `gorm:"-" json:"-"`
	// Unavailable marks an entry whose source food no longer exists.
	Unavailable bool `gorm:"-" json:"unavailable,omitempty"`
}

// Tombstone reports whether the entry has been logically removed.
func (e *MealFoodEntry) Tombstone() bool { return e.Quantity == 0 }

// Profile returns the entry's scaled values as a nutrient profile so the
// scaler can operate on it. Meal entries carry macros only.
func (e *MealFoodEntry) Profile() NutrientProfile {
	return NutrientProfile{
		Calories: e.Calories,
		Macros:   e.Macros,
		Quantity: e.Quantity,
	}
}

// ApplyProfile writes a scaled profile back onto the entry.
func (e *MealFoodEntry) ApplyProfile(p NutrientProfile) {
	e.Calories = p.Calories
	e.Macros = p.Macros
	e.Quantity = p.Quantity
}

// Meal is one named, positioned group of food entries within a diary day.
type Meal struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DiaryDayID   uint            `gorm:"index" json:"-"`
	Title        string          `gorm:"not null" json:"title"`
	MealPosition int             `json:"mealPosition"`
	Foods        []MealFoodEntry `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods"`
	Totals       MealMacroTotals `gorm:"embedded;embeddedPrefix:total_" json:"totals"`

	LocalID uint64 `gorm:"-" json:"-"`
}

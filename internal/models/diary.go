package models

import "time"

// DefaultMealTitles are the four meals a brand-new diary day is seeded
// with, in display order.
var DefaultMealTitles = []string{"Café da Manhã", "Almoço", "Lanche", "Jantar"}

// FoodDiaryDay is one user's diary for one calendar date (YYYY-MM-DD).
// DailyGoalsOfDay is a snapshot captured at day creation, so historical
// days keep the goals that were active back then.
type FoodDiaryDay struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	UserID         uint       `gorm:"uniqueIndex:idx_diary_user_date" json:"user_id"`
	Date           string     `gorm:"uniqueIndex:idx_diary_user_date;type:varchar(10)" json:"date" example:"2025-08-30"`
	DailyGoalsOfDay DailyGoals `gorm:"embedded;embeddedPrefix:goal_" json:"dailyGoalsOfDay"`
	Meals          []Meal     `gorm:"foreignKey:DiaryDayID;constraint:OnDelete:CASCADE" json:"meals"`
}

// NewDiaryDay builds the lazily-seeded day for a date with no existing
// record: four default blank meals and a snapshot of the given goals.
// The caller persists it.
func NewDiaryDay(userID uint, date string, goals DailyGoals) *FoodDiaryDay {
	day := &FoodDiaryDay{
		UserID:          userID,
		Date:            date,
		DailyGoalsOfDay: goals,
	}
	for i, title := range DefaultMealTitles {
		day.Meals = append(day.Meals, Meal{
			Title:        title,
			MealPosition: i,
			Foods:        []MealFoodEntry{},
		})
	}
	return day
}

// Clone returns a deep copy of the day. The diary assembly snapshots the
// in-memory day when a save starts, so edits arriving during the save
// never leak into the write.
func (d *FoodDiaryDay) Clone() *FoodDiaryDay {
	if d == nil {
		return nil
	}
	out := *d
	out.Meals = make([]Meal, len(d.Meals))
	for i, meal := range d.Meals {
		m := meal
		m.Foods = make([]MealFoodEntry, len(meal.Foods))
		copy(m.Foods, meal.Foods)
		out.Meals[i] = m
	}
	return &out
}

// EntityFailure describes one per-entity write that failed during a save.
type EntityFailure struct {
	Entity string `json:"entity"` // "meal" or "food_entry"
	ID     uint   `json:"id"`
	Op     string `json:"op"` // "create", "update", "delete"
	Error  string `json:"error"`
}

// SaveResult reports the outcome of a diary-day save. A save with
// failures is retryable: the in-memory day stays dirty and nothing is
// rolled back.
type SaveResult struct {
	Failures []EntityFailure `json:"failures,omitempty"`
}

// Ok reports whether every per-entity write succeeded.
func (r *SaveResult) Ok() bool { return r == nil || len(r.Failures) == 0 }

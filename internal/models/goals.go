package models

import "time"

// DailyGoals is a user's daily macro target, always stored in grams and
// calories. A percentage-of-calories form exists only transiently at the
// edit surface and is converted before persisting.
type DailyGoals struct {
	Calories float64 `json:"calories" example:"2000"`
	Carbs    float64 `json:"carbs" example:"250"`
	Fats     float64 `json:"fats" example:"66.67"`
	Protein  float64 `json:"protein" example:"100"`
}

// GoalsFromPercents converts a calorie total plus macro percentage split
// into gram targets (carbs and protein at 4 kcal/g, fats at 9 kcal/g).
func GoalsFromPercents(calories, carbsPct, fatsPct, proteinPct float64) DailyGoals {
	return DailyGoals{
		Calories: calories,
		Carbs:    calories * carbsPct / 100 / 4,
		Fats:     calories * fatsPct / 100 / 9,
		Protein:  calories * proteinPct / 100 / 4,
	}
}

// DefaultDailyGoals is the target seeded for users who never set goals:
// 2000 kcal split 50/30/20 between carbs, fats and protein.
func DefaultDailyGoals() DailyGoals {
	return GoalsFromPercents(2000, 50, 30, 20)
}

// UserGoals is the persisted row holding a user's ongoing daily goals.
// Diary days snapshot these at creation time, so changing them never
// rewrites history (only days from today forward are repropagated).
type UserGoals struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"`
	Goals     DailyGoals `gorm:"embedded;embeddedPrefix:goal_" json:"goals"`
}

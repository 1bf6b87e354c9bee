package repository

import (
	"context"
	"errors"
	"fmt"

	"nutridiary/internal/diary"
	"nutridiary/internal/models"

	"gorm.io/gorm"
)

// DiaryRepository is the persistence side of the diary: load, lazy
// creation and the reconciliating save described by PlanSave.
type DiaryRepository interface {
	diary.Store
}

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db}
}

func (r *diaryRepository) LoadDiaryDay(ctx context.Context, userID uint, date string) (*models.FoodDiaryDay, error) {
	var day models.FoodDiaryDay
	err := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_position ASC") }).
		Preload("Meals.Foods").
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, diary.ErrDayNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *diaryRepository) CreateDiaryDay(ctx context.Context, userID uint, date string, seed models.DailyGoals) (*models.FoodDiaryDay, error) {
	day := models.NewDiaryDay(userID, date, seed)
	if err := r.db.WithContext(ctx).Create(day).Error; err != nil {
		return nil, err
	}
	return day, nil
}

// SaveDiaryDay reconciles the submitted day against storage. Each write
// is independent and idempotent; failures are collected per entity
// rather than aborting the whole save, so a retry only redoes what is
// still missing.
func (r *diaryRepository) SaveDiaryDay(ctx context.Context, userID uint, day *models.FoodDiaryDay) (*models.SaveResult, error) {
	persisted, err := r.LoadDiaryDay(ctx, userID, day.Date)
	if errors.Is(err, diary.ErrDayNotFound) {
		persisted = nil
	} else if err != nil {
		return nil, fmt.Errorf("loading persisted day: %w", err)
	}

	if persisted != nil {
		day.ID = persisted.ID
	}
	if day.ID == 0 {
		header := models.FoodDiaryDay{UserID: userID, Date: day.Date, DailyGoalsOfDay: day.DailyGoalsOfDay}
		if err := r.db.WithContext(ctx).Omit("Meals").Create(&header).Error; err != nil {
			return nil, fmt.Errorf("creating day record: %w", err)
		}
		day.ID = header.ID
	}

	plan := PlanSave(persisted, day)
	result := &models.SaveResult{}
	db := r.db.WithContext(ctx)

	for _, meal := range plan.MealsToCreate {
		meal.DiaryDayID = day.ID
		meal.Foods = liveEntries(meal.Foods)
		if err := db.Create(meal).Error; err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "meal", Op: "create", Error: err.Error(),
			})
		}
	}

	for _, meal := range plan.MealsToUpdate {
		err := db.Model(&models.Meal{}).Where("id = ?", meal.ID).
			Select("title", "meal_position", "total_calories", "total_carbs", "total_fats", "total_protein").
			Updates(meal).Error
		if err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "meal", ID: meal.ID, Op: "update", Error: err.Error(),
			})
		}
	}

	for _, entry := range plan.EntriesToCreate {
		if err := db.Create(entry).Error; err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "food_entry", Op: "create", Error: err.Error(),
			})
		}
	}

	for _, entry := range plan.EntriesToUpdate {
		err := db.Model(&models.MealFoodEntry{}).Where("id = ?", entry.ID).
			Select("title", "quantity", "calories", "carbs", "fats", "protein").
			Updates(entry).Error
		if err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "food_entry", ID: entry.ID, Op: "update", Error: err.Error(),
			})
		}
	}

	if len(plan.EntryIDsToDelete) > 0 {
		if err := db.Delete(&models.MealFoodEntry{}, plan.EntryIDsToDelete).Error; err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "food_entry", Op: "delete", Error: err.Error(),
			})
		}
	}

	if len(plan.MealIDsToDelete) > 0 {
		if err := db.Where("meal_id IN ?", plan.MealIDsToDelete).Delete(&models.MealFoodEntry{}).Error; err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "food_entry", Op: "delete", Error: err.Error(),
			})
		}
		if err := db.Delete(&models.Meal{}, plan.MealIDsToDelete).Error; err != nil {
			result.Failures = append(result.Failures, models.EntityFailure{
				Entity: "meal", Op: "delete", Error: err.Error(),
			})
		}
	}

	return result, nil
}

// liveEntries filters tombstones out of a meal about to be created;
// entries removed before the meal ever hit storage leave no record.
func liveEntries(entries []models.MealFoodEntry) []models.MealFoodEntry {
	kept := make([]models.MealFoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Tombstone() {
			kept = append(kept, e)
		}
	}
	return kept
}

package repository

import (
	"context"
	"errors"

	"nutridiary/internal/models"
	"nutridiary/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalsRepository persists a user's ongoing daily goals and propagates
// changes to the snapshots of days from today forward. Historical days
// keep the goals that were active when they were created.
type GoalsRepository interface {
	LoadGoals(ctx context.Context, userID uint) (models.DailyGoals, error)
	SaveGoals(ctx context.Context, userID uint, goals models.DailyGoals) error
}

type goalsRepository struct {
	db *gorm.DB
}

func NewGoalsRepository(db *gorm.DB) GoalsRepository {
	return &goalsRepository{db}
}

func (r *goalsRepository) LoadGoals(ctx context.Context, userID uint) (models.DailyGoals, error) {
	var row models.UserGoals
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultDailyGoals(), nil
	}
	if err != nil {
		return models.DailyGoals{}, err
	}
	return row.Goals, nil
}

func (r *goalsRepository) SaveGoals(ctx context.Context, userID uint, goals models.DailyGoals) error {
	row := models.UserGoals{UserID: userID, Goals: goals}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"goal_calories", "goal_carbs", "goal_fats", "goal_protein", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	// New goals become the snapshot of every day from today on.
	return r.db.WithContext(ctx).
		Model(&models.FoodDiaryDay{}).
		Where("user_id = ? AND date >= ?", userID, utils.TodayString()).
		Updates(map[string]interface{}{
			"goal_calories": goals.Calories,
			"goal_carbs":    goals.Carbs,
			"goal_fats":     goals.Fats,
			"goal_protein":  goals.Protein,
		}).Error
}

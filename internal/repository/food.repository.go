package repository

import (
	"sync"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/utils"

	"gorm.io/gorm"
)

// FoodRepository is the food side of the store: the static reference
// table (seeded once, loaded into memory at first use) and user-authored
// custom foods.
type FoodRepository interface {
	LoadReferenceFoods() ([]models.Food, error)
	FindByID(id uint) (*models.Food, error)
	FindCustomByUserID(userID uint) ([]models.Food, error)
	CreateCustomFood(food *models.Food) error
	Search(userID uint, query string) ([]models.Food, error)
	ExistingIDs(ids []uint) (map[uint]bool, error)
}

type foodRepository struct {
	db *gorm.DB

	refOnce   sync.Once
	reference []models.Food
	refErr    error
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

// LoadReferenceFoods returns the static reference table. It is read
// from the database once and reused for the life of the process; the
// table is immutable after seeding.
func (r *foodRepository) LoadReferenceFoods() ([]models.Food, error) {
	r.refOnce.Do(func() {
		r.refErr = r.db.
			Where("is_custom = ?", false).
			Order("title ASC").
			Find(&r.reference).Error
	})
	return r.reference, r.refErr
}

func (r *foodRepository) FindByID(id uint) (*models.Food, error) {
	var food models.Food
	if err := r.db.First(&food, id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) FindCustomByUserID(userID uint) ([]models.Food, error) {
	var foods []models.Food
	err := r.db.
		Where("is_custom = ? AND user_id = ?", true, userID).
		Order("title ASC").
		Find(&foods).Error
	return foods, err
}

// CreateCustomFood persists a user-authored food. Calories are always
// derived from the macros here; a client-supplied value is discarded.
func (r *foodRepository) CreateCustomFood(food *models.Food) error {
	food.IsCustom = true
	food.Calories = nutrition.Calories(food.Macros)
	return r.db.Create(food).Error
}

// ExistingIDs reports which of the given food ids still exist. Diary
// entries referencing a missing id are shown as unavailable.
func (r *foodRepository) ExistingIDs(ids []uint) (map[uint]bool, error) {
	existing := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []uint
	if err := r.db.Model(&models.Food{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// Search filters the combined reference + custom food list with
// accent-insensitive token matching; every query token must match,
// tolerating singular/plural variations.
func (r *foodRepository) Search(userID uint, query string) ([]models.Food, error) {
	reference, err := r.LoadReferenceFoods()
	if err != nil {
		return nil, err
	}
	custom, err := r.FindCustomByUserID(userID)
	if err != nil {
		return nil, err
	}

	combined := make([]models.Food, 0, len(reference)+len(custom))
	combined = append(combined, reference...)
	combined = append(combined, custom...)
	if query == "" {
		return combined, nil
	}

	matched := make([]models.Food, 0)
	for _, food := range combined {
		if utils.MatchesFoodTitle(food.Title, query) {
			matched = append(matched, food)
		}
	}
	return matched, nil
}

package repository

import (
	"testing"

	"nutridiary/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(meals ...models.Meal) *models.FoodDiaryDay {
	return &models.FoodDiaryDay{ID: 1, UserID: 1, Date: "2025-08-30", Meals: meals}
}

func TestPlanSaveDeleteAndCreateInOneMeal(t *testing.T) {
	persisted := day(models.Meal{
		ID: 10,
		Foods: []models.MealFoodEntry{
			{ID: 100, MealID: 10, FoodID: 1, Quantity: 100},
		},
	})
	// The first entry was tombstoned, the second added since the last save.
	current := day(models.Meal{
		ID: 10,
		Foods: []models.MealFoodEntry{
			{ID: 100, MealID: 10, FoodID: 1, Quantity: 0},
			{FoodID: 2, Quantity: 50},
		},
	})

	plan := PlanSave(persisted, current)

	assert.Empty(t, plan.MealsToCreate)
	assert.Len(t, plan.MealsToUpdate, 1)
	assert.Equal(t, []uint{100}, plan.EntryIDsToDelete)
	assert.Len(t, plan.EntriesToCreate, 1)
	assert.Equal(t, uint(2), plan.EntriesToCreate[0].FoodID)
	assert.Equal(t, uint(10), plan.EntriesToCreate[0].MealID, "new entry must be attached to its persisted meal")
	assert.Empty(t, plan.EntriesToUpdate)
	assert.Empty(t, plan.MealIDsToDelete)
}

func TestPlanSaveNeverPersistedTombstoneIsSkipped(t *testing.T) {
	current := day(models.Meal{
		ID: 10,
		Foods: []models.MealFoodEntry{
			{FoodID: 3, Quantity: 0},
		},
	})

	plan := PlanSave(day(models.Meal{ID: 10}), current)

	assert.Empty(t, plan.EntriesToCreate)
	assert.Empty(t, plan.EntryIDsToDelete)
}

func TestPlanSaveUpdatesExistingEntries(t *testing.T) {
	persisted := day(models.Meal{
		ID:    10,
		Foods: []models.MealFoodEntry{{ID: 100, MealID: 10, Quantity: 100}},
	})
	current := day(models.Meal{
		ID:    10,
		Foods: []models.MealFoodEntry{{ID: 100, MealID: 10, Quantity: 150}},
	})

	plan := PlanSave(persisted, current)

	assert.Len(t, plan.EntriesToUpdate, 1)
	assert.Equal(t, 150.0, plan.EntriesToUpdate[0].Quantity)
	assert.Empty(t, plan.EntryIDsToDelete)
}

func TestPlanSaveNewMealCreatedWithLiveEntries(t *testing.T) {
	current := day(models.Meal{
		Title: "Ceia",
		Foods: []models.MealFoodEntry{{FoodID: 4, Quantity: 30}},
	})

	plan := PlanSave(nil, current)

	assert.Len(t, plan.MealsToCreate, 1)
	assert.Equal(t, "Ceia", plan.MealsToCreate[0].Title)
	// Entries of a brand-new meal ride along with the meal insert.
	assert.Empty(t, plan.EntriesToCreate)
}

func TestPlanSaveDeletedMealCascades(t *testing.T) {
	persisted := day(
		models.Meal{ID: 10, Foods: []models.MealFoodEntry{{ID: 100, MealID: 10, Quantity: 100}}},
		models.Meal{ID: 11},
	)
	current := day(models.Meal{ID: 11})

	plan := PlanSave(persisted, current)

	assert.Equal(t, []uint{10}, plan.MealIDsToDelete)
	// The meal delete cascades; its entries are not deleted individually.
	assert.Empty(t, plan.EntryIDsToDelete)
}

func TestPlanSaveOrphanedPersistedEntryIsDeleted(t *testing.T) {
	persisted := day(models.Meal{
		ID: 10,
		Foods: []models.MealFoodEntry{
			{ID: 100, MealID: 10, Quantity: 100},
			{ID: 101, MealID: 10, Quantity: 40},
		},
	})
	current := day(models.Meal{
		ID:    10,
		Foods: []models.MealFoodEntry{{ID: 100, MealID: 10, Quantity: 100}},
	})

	plan := PlanSave(persisted, current)

	assert.Equal(t, []uint{101}, plan.EntryIDsToDelete)
}

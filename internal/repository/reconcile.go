package repository

import "nutridiary/internal/models"

// SavePlan is the set of independent writes one diary-day save performs.
// Planning is separated from execution so the diff logic stays pure and
// each write can be retried or reported on its own.
type SavePlan struct {
	MealsToCreate []*models.Meal // created with their live entries in one insert
	MealsToUpdate []*models.Meal // title, position and totals written unconditionally

	EntriesToCreate []*models.MealFoodEntry
	EntriesToUpdate []*models.MealFoodEntry

	EntryIDsToDelete []uint
	MealIDsToDelete  []uint // cascades to the meals' entries
}

// PlanSave diffs the submitted day against the persisted one:
//
//   - a meal with no persisted record is created;
//   - a tombstoned entry (quantity 0) with a persisted counterpart is
//     deleted; a tombstone that was never persisted is simply skipped;
//   - a new entry is created, an existing one updated;
//   - persisted meals or entries missing from the submitted day are
//     deleted (meal deletion cascades).
//
// persisted may be nil for a day that has no stored meals yet.
func PlanSave(persisted, current *models.FoodDiaryDay) SavePlan {
	var plan SavePlan

	currentMealIDs := make(map[uint]bool, len(current.Meals))
	for i := range current.Meals {
		meal := &current.Meals[i]
		if meal.ID == 0 {
			plan.MealsToCreate = append(plan.MealsToCreate, meal)
			continue
		}
		currentMealIDs[meal.ID] = true
		plan.MealsToUpdate = append(plan.MealsToUpdate, meal)

		entryIDs := make(map[uint]bool, len(meal.Foods))
		for j := range meal.Foods {
			e := &meal.Foods[j]
			switch {
			case e.ID == 0 && e.Tombstone():
				// added and removed before ever being saved
			case e.ID == 0:
				e.MealID = meal.ID
				plan.EntriesToCreate = append(plan.EntriesToCreate, e)
			case e.Tombstone():
				plan.EntryIDsToDelete = append(plan.EntryIDsToDelete, e.ID)
			default:
				entryIDs[e.ID] = true
				plan.EntriesToUpdate = append(plan.EntriesToUpdate, e)
			}
		}

		if persisted == nil {
			continue
		}
		for k := range persisted.Meals {
			if persisted.Meals[k].ID != meal.ID {
				continue
			}
			for _, pe := range persisted.Meals[k].Foods {
				if !entryIDs[pe.ID] && !contains(plan.EntryIDsToDelete, pe.ID) {
					plan.EntryIDsToDelete = append(plan.EntryIDsToDelete, pe.ID)
				}
			}
		}
	}

	if persisted != nil {
		for i := range persisted.Meals {
			if !currentMealIDs[persisted.Meals[i].ID] {
				plan.MealIDsToDelete = append(plan.MealIDsToDelete, persisted.Meals[i].ID)
			}
		}
	}
	return plan
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

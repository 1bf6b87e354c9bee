package diary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutridiary/internal/diary"
	"nutridiary/internal/mocks"
	"nutridiary/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testDate = "2025-08-30"

func testGoals() models.DailyGoals {
	return models.DefaultDailyGoals()
}

func referenceFood() models.Food {
	return models.Food{
		ID:    7,
		Title: "Arroz branco cozido",
		NutrientProfile: models.NutrientProfile{
			Calories: 165,
			Macros:   models.MacroNutrients{Carbs: 20, Fats: 5, Protein: 10},
			Quantity: 100,
		},
	}
}

// loadedAssembly wires an assembly over a mock store that already holds
// a persisted day.
func loadedAssembly(t *testing.T, day *models.FoodDiaryDay) (*diary.Assembly, *mocks.MockDiaryStore) {
	t.Helper()
	store := new(mocks.MockDiaryStore)
	store.On("LoadDiaryDay", mock.Anything, uint(1), testDate).Return(day, nil)

	asm := diary.NewAssembly(store, 1, testDate)
	assert.NoError(t, asm.Load(context.Background(), testGoals()))
	return asm, store
}

func TestLoadSeedsNewDay(t *testing.T) {
	store := new(mocks.MockDiaryStore)
	goals := testGoals()
	store.On("LoadDiaryDay", mock.Anything, uint(1), testDate).Return(nil, diary.ErrDayNotFound)
	store.On("CreateDiaryDay", mock.Anything, uint(1), testDate, goals).
		Return(models.NewDiaryDay(1, testDate, goals), nil)

	asm := diary.NewAssembly(store, 1, testDate)
	assert.NoError(t, asm.Load(context.Background(), goals))
	assert.Equal(t, diary.StateLoaded, asm.State())

	day, err := asm.Day()
	assert.NoError(t, err)
	assert.Len(t, day.Meals, 4)
	for i, meal := range day.Meals {
		assert.Equal(t, models.DefaultMealTitles[i], meal.Title)
		assert.Equal(t, i, meal.MealPosition)
		assert.Empty(t, meal.Foods)
	}
	assert.Equal(t, goals, day.DailyGoalsOfDay)
	store.AssertExpectations(t)
}

func TestLoadIsIdempotent(t *testing.T) {
	store := new(mocks.MockDiaryStore)
	store.On("LoadDiaryDay", mock.Anything, uint(1), testDate).
		Return(models.NewDiaryDay(1, testDate, testGoals()), nil).Once()

	asm := diary.NewAssembly(store, 1, testDate)
	assert.NoError(t, asm.Load(context.Background(), testGoals()))
	assert.NoError(t, asm.Load(context.Background(), testGoals()))
	store.AssertExpectations(t)
}

func TestLoadRecomputesMealTotals(t *testing.T) {
	day := models.NewDiaryDay(1, testDate, testGoals())
	day.Meals[0].Foods = []models.MealFoodEntry{
		{FoodID: 7, Title: "Arroz", Calories: 165, Macros: models.MacroNutrients{Carbs: 20, Fats: 5, Protein: 10}, Quantity: 100},
	}
	// Persisted totals are stale on purpose.
	day.Meals[0].Totals = models.MealMacroTotals{Calories: 1}

	asm, _ := loadedAssembly(t, day)
	loaded, err := asm.Day()
	assert.NoError(t, err)
	assert.Equal(t, models.MealMacroTotals{Calories: 165, Carbs: 20, Fats: 5, Protein: 10}, loaded.Meals[0].Totals)
}

func TestAddFoodScalesFromReferenceProfile(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	assert.NoError(t, asm.AddFood(1, referenceFood(), 150))
	assert.Equal(t, diary.StateDirty, asm.State())

	day, _ := asm.Day()
	entry := day.Meals[1].Foods[0]
	assert.Equal(t, uint(7), entry.FoodID)
	assert.Equal(t, 150.0, entry.Quantity)
	assert.Equal(t, models.MacroNutrients{Carbs: 30, Fats: 7.5, Protein: 15}, entry.Macros)
	// Calories re-derived from the scaled macros, not scaled directly.
	assert.Equal(t, 247.5, entry.Calories)
	assert.Equal(t, models.MealMacroTotals{Calories: 247.5, Carbs: 30, Fats: 7.5, Protein: 15}, day.Meals[1].Totals)
}

func TestChangeQuantityUsesEntryLineage(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 150))

	// Scale down from the entry's own 150 g values, not from the source.
	assert.NoError(t, asm.ChangeQuantity(0, 0, 50))

	day, _ := asm.Day()
	entry := day.Meals[0].Foods[0]
	assert.Equal(t, 50.0, entry.Quantity)
	assert.Equal(t, models.MacroNutrients{Carbs: 10, Fats: 2.5, Protein: 5}, entry.Macros)
	assert.Equal(t, 82.5, entry.Calories)
}

func TestChangeQuantityRejectsInvalidAndKeepsEntry(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 100))

	err := asm.ChangeQuantity(0, 0, -5)
	assert.Error(t, err)

	day, _ := asm.Day()
	assert.Equal(t, 100.0, day.Meals[0].Foods[0].Quantity)
	assert.Equal(t, 165.0, day.Meals[0].Foods[0].Calories)
}

func TestChangeQuantityUnknownTargets(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	assert.ErrorIs(t, asm.ChangeQuantity(9, 0, 50), diary.ErrMealNotFound)
	assert.ErrorIs(t, asm.ChangeQuantity(0, 3, 50), diary.ErrEntryNotFound)
}

func TestRemoveFoodTombstonesEntry(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 100))

	assert.NoError(t, asm.RemoveFood(0, 0))

	day, _ := asm.Day()
	// Still present in memory until the next save flushes the delete.
	assert.Len(t, day.Meals[0].Foods, 1)
	assert.True(t, day.Meals[0].Foods[0].Tombstone())
	assert.Equal(t, models.MealMacroTotals{}, day.Meals[0].Totals)

	totals, err := asm.DayTotals()
	assert.NoError(t, err)
	assert.Equal(t, models.MealMacroTotals{}, totals)

	// Further edits to a removed entry are rejected.
	assert.ErrorIs(t, asm.ChangeQuantity(0, 0, 50), diary.ErrEntryRemoved)
}

func TestMealManagement(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	pos, err := asm.AddMeal("Ceia")
	assert.NoError(t, err)
	assert.Equal(t, 4, pos)

	assert.NoError(t, asm.RenameMeal(4, "Ceia Tardia"))
	assert.NoError(t, asm.DeleteMeal(0))

	day, _ := asm.Day()
	assert.Len(t, day.Meals, 4)
	assert.Equal(t, "Almoço", day.Meals[0].Title)
	assert.Equal(t, "Ceia Tardia", day.Meals[3].Title)
	for i, meal := range day.Meals {
		assert.Equal(t, i, meal.MealPosition)
	}
}

func TestReorderMeals(t *testing.T) {
	asm, _ := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	assert.NoError(t, asm.ReorderMeals([]int{3, 2, 1, 0}))

	day, _ := asm.Day()
	assert.Equal(t, "Jantar", day.Meals[0].Title)
	assert.Equal(t, "Café da Manhã", day.Meals[3].Title)
	for i, meal := range day.Meals {
		assert.Equal(t, i, meal.MealPosition)
	}

	assert.ErrorIs(t, asm.ReorderMeals([]int{0, 1}), diary.ErrBadReorder)
	assert.ErrorIs(t, asm.ReorderMeals([]int{0, 0, 1, 2}), diary.ErrBadReorder)
}

func TestSaveAdoptsIDsAndDropsFlushedTombstones(t *testing.T) {
	day := models.NewDiaryDay(1, testDate, testGoals())
	day.ID = 11
	day.Meals[0].ID = 21
	day.Meals[0].Foods = []models.MealFoodEntry{
		{ID: 31, MealID: 21, FoodID: 7, Calories: 165, Macros: models.MacroNutrients{Carbs: 20, Fats: 5, Protein: 10}, Quantity: 100},
	}

	asm, store := loadedAssembly(t, day)
	assert.NoError(t, asm.RemoveFood(0, 0))
	assert.NoError(t, asm.AddFood(1, referenceFood(), 50))

	store.On("SaveDiaryDay", mock.Anything, uint(1), mock.Anything).
		Run(func(args mock.Arguments) {
			snapshot := args.Get(2).(*models.FoodDiaryDay)
			// The snapshot carries the tombstone for deletion and the new
			// entry without a database id yet.
			assert.True(t, snapshot.Meals[0].Foods[0].Tombstone())
			assert.Zero(t, snapshot.Meals[1].Foods[0].ID)
			snapshot.Meals[1].Foods[0].ID = 32
			snapshot.Meals[1].Foods[0].MealID = snapshot.Meals[1].ID
		}).
		Return(&models.SaveResult{}, nil)

	result, err := asm.Save(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Ok())
	assert.Equal(t, diary.StateLoaded, asm.State())

	saved, _ := asm.Day()
	assert.Empty(t, saved.Meals[0].Foods, "flushed tombstone should be dropped from memory")
	assert.Equal(t, uint(32), saved.Meals[1].Foods[0].ID)
	store.AssertExpectations(t)
}

func TestSaveDropsTombstoneInCreatedMeal(t *testing.T) {
	asm, store := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	pos, err := asm.AddMeal("Ceia")
	assert.NoError(t, err)
	assert.NoError(t, asm.AddFood(pos, referenceFood(), 100))
	assert.NoError(t, asm.RemoveFood(pos, 0))

	store.On("SaveDiaryDay", mock.Anything, uint(1), mock.Anything).
		Run(func(args mock.Arguments) {
			snapshot := args.Get(2).(*models.FoodDiaryDay)
			// The store inserts a brand-new meal with its tombstones
			// filtered out, so the flushed entry leaves no trace behind.
			meal := &snapshot.Meals[pos]
			meal.ID = 25
			live := meal.Foods[:0]
			for _, e := range meal.Foods {
				if !e.Tombstone() {
					live = append(live, e)
				}
			}
			meal.Foods = live
		}).
		Return(&models.SaveResult{}, nil)

	result, err := asm.Save(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Ok())
	assert.Equal(t, diary.StateLoaded, asm.State())

	// The removed entry must not linger in the new meal after the save.
	day, _ := asm.Day()
	assert.Equal(t, uint(25), day.Meals[pos].ID)
	assert.Empty(t, day.Meals[pos].Foods)

	// And the clean day needs no further save.
	result, err = asm.Save(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Ok())
	store.AssertNumberOfCalls(t, "SaveDiaryDay", 1)
}

func TestSaveOnCleanDayIsNoop(t *testing.T) {
	asm, store := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))

	result, err := asm.Save(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Ok())
	store.AssertNotCalled(t, "SaveDiaryDay", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveBeforeLoad(t *testing.T) {
	asm := diary.NewAssembly(new(mocks.MockDiaryStore), 1, testDate)
	_, err := asm.Save(context.Background())
	assert.ErrorIs(t, err, diary.ErrNotLoaded)
}

func TestFailedSaveStaysDirty(t *testing.T) {
	asm, store := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 100))

	store.On("SaveDiaryDay", mock.Anything, uint(1), mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := asm.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, diary.StateDirty, asm.State())

	// The failed write must not have adopted anything or dropped entries.
	day, _ := asm.Day()
	assert.Len(t, day.Meals[0].Foods, 1)
}

func TestPartialSaveFailureStaysDirty(t *testing.T) {
	asm, store := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 100))

	store.On("SaveDiaryDay", mock.Anything, uint(1), mock.Anything).
		Return(&models.SaveResult{Failures: []models.EntityFailure{
			{Entity: "food_entry", Op: "create", Error: "unique constraint"},
		}}, nil)

	result, err := asm.Save(context.Background())
	assert.NoError(t, err)
	assert.False(t, result.Ok())
	assert.Equal(t, diary.StateDirty, asm.State())
}

func TestMutationDuringSaveFoldsIntoNextSave(t *testing.T) {
	asm, store := loadedAssembly(t, models.NewDiaryDay(1, testDate, testGoals()))
	assert.NoError(t, asm.AddFood(0, referenceFood(), 100))

	store.On("SaveDiaryDay", mock.Anything, uint(1), mock.Anything).
		Run(func(args mock.Arguments) {
			// The day is mid-save: edits keep applying in memory and a
			// second save is refused.
			assert.NoError(t, asm.AddFood(1, referenceFood(), 50))
			_, err := asm.Save(context.Background())
			assert.ErrorIs(t, err, diary.ErrSaveInFlight)
		}).
		Return(&models.SaveResult{}, nil)

	result, err := asm.Save(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Ok())

	// The mid-save edit survived and keeps the day dirty for the next save.
	assert.Equal(t, diary.StateDirty, asm.State())
	day, _ := asm.Day()
	assert.Len(t, day.Meals[1].Foods, 1)
	assert.Equal(t, 50.0, day.Meals[1].Foods[0].Quantity)
}

func TestManagerReturnsSameAssemblyPerDay(t *testing.T) {
	store := new(mocks.MockDiaryStore)
	store.On("LoadDiaryDay", mock.Anything, uint(1), testDate).
		Return(models.NewDiaryDay(1, testDate, testGoals()), nil).Once()
	goals := new(mocks.MockGoalsRepository)
	goals.On("LoadGoals", mock.Anything, uint(1)).Return(testGoals(), nil).Once()

	manager := diary.NewManager(store, goals)
	first, err := manager.Day(context.Background(), 1, testDate)
	assert.NoError(t, err)
	second, err := manager.Day(context.Background(), 1, testDate)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	store.AssertExpectations(t)
}

func TestManagerEvictFromDropsTodayForwardSessions(t *testing.T) {
	past, today, future := "2025-08-29", "2025-08-30", "2025-08-31"

	store := new(mocks.MockDiaryStore)
	store.On("LoadDiaryDay", mock.Anything, uint(1), past).
		Return(models.NewDiaryDay(1, past, testGoals()), nil).Once()
	for _, date := range []string{today, future} {
		store.On("LoadDiaryDay", mock.Anything, uint(1), date).
			Return(models.NewDiaryDay(1, date, testGoals()), nil).Once()
		store.On("LoadDiaryDay", mock.Anything, uint(1), date).
			Return(models.NewDiaryDay(1, date, testGoals()), nil).Once()
	}
	store.On("LoadDiaryDay", mock.Anything, uint(2), today).
		Return(models.NewDiaryDay(2, today, testGoals()), nil).Once()
	goals := new(mocks.MockGoalsRepository)
	goals.On("LoadGoals", mock.Anything, mock.Anything).Return(testGoals(), nil)

	manager := diary.NewManager(store, goals)
	ctx := context.Background()
	pastAsm, _ := manager.Day(ctx, 1, past)
	todayAsm, _ := manager.Day(ctx, 1, today)
	futureAsm, _ := manager.Day(ctx, 1, future)
	otherAsm, _ := manager.Day(ctx, 2, today)

	manager.EvictFrom(1, today)

	// Past days keep their session; today and later reload from storage.
	reloaded, _ := manager.Day(ctx, 1, past)
	assert.Same(t, pastAsm, reloaded)
	reloaded, _ = manager.Day(ctx, 1, today)
	assert.NotSame(t, todayAsm, reloaded)
	reloaded, _ = manager.Day(ctx, 1, future)
	assert.NotSame(t, futureAsm, reloaded)

	// Other users are untouched.
	reloaded, _ = manager.Day(ctx, 2, today)
	assert.Same(t, otherAsm, reloaded)
	store.AssertExpectations(t)
}

func TestManagerSweepsCleanSessionsPastCap(t *testing.T) {
	store := new(mocks.MockDiaryStore)
	store.On("LoadDiaryDay", mock.Anything, uint(1), mock.Anything).
		Return(nil, diary.ErrDayNotFound)
	store.On("CreateDiaryDay", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return(models.NewDiaryDay(1, testDate, testGoals()), nil)
	goals := new(mocks.MockGoalsRepository)
	goals.On("LoadGoals", mock.Anything, uint(1)).Return(testGoals(), nil)

	manager := diary.NewManager(store, goals)
	ctx := context.Background()

	dirtyDate := "2024-01-01"
	dirty, err := manager.Day(ctx, 1, dirtyDate)
	assert.NoError(t, err)
	assert.NoError(t, dirty.AddFood(0, referenceFood(), 100))

	const days = 400
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		_, err := manager.Day(ctx, 1, start.AddDate(0, 0, i).Format("2006-01-02"))
		assert.NoError(t, err)
	}

	// Clean sessions were swept once the cap was crossed; the dirty one
	// survives with its unsaved edit intact.
	assert.Less(t, manager.Sessions(), days)
	kept, err := manager.Day(ctx, 1, dirtyDate)
	assert.NoError(t, err)
	assert.Same(t, dirty, kept)
	assert.Equal(t, diary.StateDirty, kept.State())
}

func TestManagerRejectsBadDate(t *testing.T) {
	manager := diary.NewManager(new(mocks.MockDiaryStore), new(mocks.MockGoalsRepository))
	_, err := manager.Day(context.Background(), 1, "30-08-2025")
	assert.ErrorIs(t, err, diary.ErrBadDate)

	_, err = manager.Day(context.Background(), 1, "2025-8-3")
	assert.ErrorIs(t, err, diary.ErrBadDate)
}

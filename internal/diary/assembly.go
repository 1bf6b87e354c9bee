// Package diary owns the in-memory state of a user's food-diary day.
// All mutations flow through an Assembly; nothing else touches the day.
// Edits are applied synchronously in memory with totals recomputed on
// the spot, and an explicit Save reconciles the day against the store.
package diary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

var (
	// ErrDayNotFound is returned by a Store when no record exists for a
	// date. The assembly reacts by lazily seeding a new day.
	ErrDayNotFound = errors.New("diary day not found")

	ErrNotLoaded     = errors.New("diary day not loaded")
	ErrSaveInFlight  = errors.New("a save is already in flight")
	ErrMealNotFound  = errors.New("meal not found")
	ErrEntryNotFound = errors.New("food entry not found")
	ErrEntryRemoved  = errors.New("food entry already removed")
	ErrBadReorder    = errors.New("reorder must be a permutation of current meal positions")
)

// Store is the persistence collaborator the assembly depends on. The
// repository package provides the gorm implementation; tests mock it.
type Store interface {
	LoadDiaryDay(ctx context.Context, userID uint, date string) (*models.FoodDiaryDay, error)
	CreateDiaryDay(ctx context.Context, userID uint, date string, seed models.DailyGoals) (*models.FoodDiaryDay, error)
	SaveDiaryDay(ctx context.Context, userID uint, day *models.FoodDiaryDay) (*models.SaveResult, error)
}

// State of an assembly. Days cycle Uninitialized → Loaded → Dirty →
// Saving → Loaded.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateDirty
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Assembly materializes one user's diary day and serializes every
// mutation on it. Saves snapshot the day, so edits arriving while a
// save is in flight keep applying in memory and are folded into the
// next save, never lost and never reordered.
type Assembly struct {
	store  Store
	userID uint
	date   string

	mu              sync.Mutex
	state           State
	day             *models.FoodDiaryDay
	seq             uint64
	dirtyDuringSave bool
}

func NewAssembly(store Store, userID uint, date string) *Assembly {
	return &Assembly{store: store, userID: userID, date: date}
}

// Load fetches the persisted day, seeding a fresh one (four default
// meals, snapshot of seedGoals) when no record exists yet. Calling Load
// on an already loaded assembly is a no-op.
func (a *Assembly) Load(ctx context.Context, seedGoals models.DailyGoals) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateUninitialized {
		return nil
	}

	day, err := a.store.LoadDiaryDay(ctx, a.userID, a.date)
	if errors.Is(err, ErrDayNotFound) {
		day, err = a.store.CreateDiaryDay(ctx, a.userID, a.date, seedGoals)
	}
	if err != nil {
		return err
	}

	a.day = day
	for i := range a.day.Meals {
		a.day.Meals[i].LocalID = a.nextSeq()
		for j := range a.day.Meals[i].Foods {
			a.day.Meals[i].Foods[j].LocalID = a.nextSeq()
		}
		a.day.Meals[i].Totals = nutrition.AggregateFoods(a.day.Meals[i].Foods)
	}
	a.state = StateLoaded
	return nil
}

// State returns the current lifecycle state.
func (a *Assembly) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Day returns a deep copy of the in-memory day.
func (a *Assembly) Day() (models.FoodDiaryDay, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.day == nil {
		return models.FoodDiaryDay{}, ErrNotLoaded
	}
	return *a.day.Clone(), nil
}

// DayTotals aggregates all meal totals into day totals.
func (a *Assembly) DayTotals() (models.MealMacroTotals, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.day == nil {
		return models.MealMacroTotals{}, ErrNotLoaded
	}
	return nutrition.AggregateMeals(a.day.Meals), nil
}

// ChangeQuantity rescales one entry to a new consumed quantity, using
// the entry's own previous values as the scaling base. An invalid
// quantity leaves the entry untouched. Quantity 0 tombstones the entry.
func (a *Assembly) ChangeQuantity(mealPos, entryIndex int, newQuantity float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	meal, err := a.mealAt(mealPos)
	if err != nil {
		return err
	}
	if entryIndex < 0 || entryIndex >= len(meal.Foods) {
		return ErrEntryNotFound
	}
	entry := &meal.Foods[entryIndex]
	if entry.Tombstone() {
		return ErrEntryRemoved
	}

	scaled, err := nutrition.Scale(entry.Profile(), entry.Quantity, newQuantity)
	if err != nil {
		return err
	}
	entry.ApplyProfile(scaled)
	meal.Totals = nutrition.AggregateFoods(meal.Foods)
	a.markDirty()
	return nil
}

// AddFood appends a food to a meal at the given consumed quantity,
// scaled from the food's reference profile. From here on the entry owns
// its scaling lineage; later edits to the source food never touch it.
func (a *Assembly) AddFood(mealPos int, food models.Food, quantity float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	meal, err := a.mealAt(mealPos)
	if err != nil {
		return err
	}
	scaled, err := nutrition.Scale(food.NutrientProfile, food.Quantity, quantity)
	if err != nil {
		return err
	}

	entry := models.MealFoodEntry{
		MealID:   meal.ID,
		FoodID:   food.ID,
		Title:    food.Title,
		IsCustom: food.IsCustom,
		LocalID:  a.nextSeq(),
	}
	entry.ApplyProfile(scaled)
	meal.Foods = append(meal.Foods, entry)
	meal.Totals = nutrition.AggregateFoods(meal.Foods)
	a.markDirty()
	return nil
}

// RemoveFood tombstones an entry. It stops contributing to totals
// immediately and its persisted record is deleted on the next save.
func (a *Assembly) RemoveFood(mealPos, entryIndex int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	meal, err := a.mealAt(mealPos)
	if err != nil {
		return err
	}
	if entryIndex < 0 || entryIndex >= len(meal.Foods) {
		return ErrEntryNotFound
	}
	entry := &meal.Foods[entryIndex]
	if entry.Tombstone() {
		return nil
	}

	scaled, err := nutrition.Scale(entry.Profile(), entry.Quantity, 0)
	if err != nil {
		return err
	}
	entry.ApplyProfile(scaled)
	meal.Totals = nutrition.AggregateFoods(meal.Foods)
	a.markDirty()
	return nil
}

// RenameMeal sets a meal's user-visible title.
func (a *Assembly) RenameMeal(mealPos int, title string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	meal, err := a.mealAt(mealPos)
	if err != nil {
		return err
	}
	meal.Title = title
	a.markDirty()
	return nil
}

// AddMeal appends a new empty meal at the end of the day and returns
// its position.
func (a *Assembly) AddMeal(title string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.day == nil {
		return 0, ErrNotLoaded
	}

	pos := len(a.day.Meals)
	a.day.Meals = append(a.day.Meals, models.Meal{
		Title:        title,
		MealPosition: pos,
		Foods:        []models.MealFoodEntry{},
		LocalID:      a.nextSeq(),
	})
	a.markDirty()
	return pos, nil
}

// DeleteMeal removes a meal and all of its entries from the day; the
// persisted records cascade-delete on the next save. Remaining meals
// are renumbered so positions stay dense and unique.
func (a *Assembly) DeleteMeal(mealPos int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.mealAt(mealPos); err != nil {
		return err
	}
	a.day.Meals = append(a.day.Meals[:mealPos], a.day.Meals[mealPos+1:]...)
	for i := range a.day.Meals {
		a.day.Meals[i].MealPosition = i
	}
	a.markDirty()
	return nil
}

// ReorderMeals rearranges the day's meals. order lists current
// positions in their new sequence and must be a permutation.
func (a *Assembly) ReorderMeals(order []int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.day == nil {
		return ErrNotLoaded
	}
	if len(order) != len(a.day.Meals) {
		return ErrBadReorder
	}

	seen := make(map[int]bool, len(order))
	reordered := make([]models.Meal, 0, len(order))
	for newPos, oldPos := range order {
		if oldPos < 0 || oldPos >= len(a.day.Meals) || seen[oldPos] {
			return ErrBadReorder
		}
		seen[oldPos] = true
		meal := a.day.Meals[oldPos]
		meal.MealPosition = newPos
		reordered = append(reordered, meal)
	}
	a.day.Meals = reordered
	a.markDirty()
	return nil
}

// Save persists the cumulative in-memory state as of this call. Only
// one save may be in flight; mutations arriving during the save keep
// the day dirty so the caller saves again. On failure (or partial
// failure) nothing is rolled back and the day stays dirty for retry.
func (a *Assembly) Save(ctx context.Context) (*models.SaveResult, error) {
	a.mu.Lock()
	switch a.state {
	case StateUninitialized:
		a.mu.Unlock()
		return nil, ErrNotLoaded
	case StateSaving:
		a.mu.Unlock()
		return nil, ErrSaveInFlight
	case StateLoaded:
		a.mu.Unlock()
		return &models.SaveResult{}, nil
	}
	snapshot := a.day.Clone()
	a.state = StateSaving
	a.dirtyDuringSave = false
	a.mu.Unlock()

	result, err := a.store.SaveDiaryDay(ctx, a.userID, snapshot)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil || !result.Ok() {
		a.state = StateDirty
		return result, err
	}

	a.fold(snapshot)
	if a.dirtyDuringSave {
		a.state = StateDirty
	} else {
		a.state = StateLoaded
	}
	return result, nil
}

// fold merges the outcome of a completed save back into the live day:
// database ids assigned to created meals/entries are adopted, and
// tombstones that were flushed are physically dropped from memory.
func (a *Assembly) fold(snapshot *models.FoodDiaryDay) {
	savedMeals := make(map[uint64]*models.Meal, len(snapshot.Meals))
	savedEntries := make(map[uint64]*models.MealFoodEntry)
	for i := range snapshot.Meals {
		savedMeals[snapshot.Meals[i].LocalID] = &snapshot.Meals[i]
		for j := range snapshot.Meals[i].Foods {
			savedEntries[snapshot.Meals[i].Foods[j].LocalID] = &snapshot.Meals[i].Foods[j]
		}
	}

	for i := range a.day.Meals {
		meal := &a.day.Meals[i]
		if saved, ok := savedMeals[meal.LocalID]; ok && meal.ID == 0 {
			meal.ID = saved.ID
		}
		kept := meal.Foods[:0]
		for j := range meal.Foods {
			entry := meal.Foods[j]
			saved, ok := savedEntries[entry.LocalID]
			if ok {
				if entry.ID == 0 {
					entry.ID = saved.ID
				}
				if entry.MealID == 0 {
					entry.MealID = saved.MealID
				}
				// Flushed tombstone: its record is gone, drop it.
				if saved.Tombstone() && entry.Tombstone() {
					continue
				}
			}
			// A tombstone still without a database id has no record to
			// delete: the save either skipped it or filtered it out of a
			// newly created meal. Drop it here or it lingers forever.
			if entry.Tombstone() && entry.ID == 0 {
				continue
			}
			kept = append(kept, entry)
		}
		meal.Foods = kept
	}
	a.day.ID = snapshot.ID
}

func (a *Assembly) mealAt(pos int) (*models.Meal, error) {
	if a.day == nil {
		return nil, ErrNotLoaded
	}
	if pos < 0 || pos >= len(a.day.Meals) {
		return nil, ErrMealNotFound
	}
	return &a.day.Meals[pos], nil
}

func (a *Assembly) markDirty() {
	if a.state == StateSaving {
		a.dirtyDuringSave = true
		return
	}
	a.state = StateDirty
}

func (a *Assembly) nextSeq() uint64 {
	a.seq++
	return a.seq
}

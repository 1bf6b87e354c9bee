package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"nutridiary/internal/cache"
	"nutridiary/internal/diary"
	"nutridiary/internal/middleware"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DiaryController struct {
	manager *diary.Manager
	foods   repository.FoodRepository
	cache   *cache.RedisClient
}

func NewDiaryController(manager *diary.Manager, foods repository.FoodRepository, cache *cache.RedisClient) *DiaryController {
	return &DiaryController{manager: manager, foods: foods, cache: cache}
}

type addFoodRequest struct {
	FoodID   uint    `json:"foodId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

type changeQuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

type mealTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type reorderMealsRequest struct {
	Order []int `json:"order" binding:"required"`
}

// GetDiaryDay godoc
// @Summary Get a diary day
// @Description Retrieve a user's diary day, creating and seeding it on first access
// @Tags diary
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Diary day retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve diary day"
// @Router /diary/{date} [get]
func (dc *DiaryController) GetDiaryDay(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	if day, ok, err := dc.cache.GetDiaryDay(userID, date); err == nil && ok {
		dc.markUnavailable(day)
		dc.respondDay(c, http.StatusOK, "Diary day retrieved successfully", day)
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	day, err := asm.Day()
	if err != nil {
		dc.fail(c, http.StatusInternalServerError, "Failed to retrieve diary day", err)
		return
	}

	if asm.State() == diary.StateLoaded {
		if err := dc.cache.StoreDiaryDay(userID, date, &day); err != nil {
			log.Printf("Failed to cache diary day %d/%s: %v", userID, date, err)
		}
	}
	dc.markUnavailable(&day)
	dc.respondDay(c, http.StatusOK, "Diary day retrieved successfully", &day)
}

// markUnavailable flags entries whose source food no longer exists and
// recomputes totals without their contribution. Display-level only: the
// persisted entry is kept so the user can still see and remove it.
func (dc *DiaryController) markUnavailable(day *models.FoodDiaryDay) {
	seen := make(map[uint]bool)
	var ids []uint
	for i := range day.Meals {
		for j := range day.Meals[i].Foods {
			if id := day.Meals[i].Foods[j].FoodID; id != 0 && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return
	}

	existing, err := dc.foods.ExistingIDs(ids)
	if err != nil {
		log.Printf("Failed to check food availability: %v", err)
		return
	}

	for i := range day.Meals {
		changed := false
		for j := range day.Meals[i].Foods {
			entry := &day.Meals[i].Foods[j]
			if entry.FoodID != 0 && !existing[entry.FoodID] {
				entry.Unavailable = true
				changed = true
			}
		}
		if changed {
			day.Meals[i].Totals = nutrition.AggregateFoods(day.Meals[i].Foods)
		}
	}
}

// AddFood godoc
// @Summary Add a food to a meal
// @Description Scale a food to the consumed quantity and append it to the meal
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param pos path int true "Meal position"
// @Param entry body addFoodRequest true "Food and quantity"
// @Success 200 {object} map[string]interface{} "Food added successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Meal or food not found"
// @Router /diary/{date}/meals/{pos}/foods [post]
func (dc *DiaryController) AddFood(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	var req addFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.fail(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	pos, ok := dc.mealPos(c)
	if !ok {
		return
	}

	food, err := dc.foods.FindByID(req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dc.fail(c, http.StatusNotFound, "Food not found", err)
		} else {
			dc.fail(c, http.StatusInternalServerError, "Failed to retrieve food", err)
		}
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.AddFood(pos, *food, req.Quantity); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Food added successfully")
}

// ChangeQuantity godoc
// @Summary Change an entry's quantity
// @Description Rescale a diary entry to a new consumed quantity; quantity 0 removes it
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param pos path int true "Meal position"
// @Param index path int true "Entry index inside the meal"
// @Param quantity body changeQuantityRequest true "New quantity"
// @Success 200 {object} map[string]interface{} "Quantity changed successfully"
// @Failure 400 {object} map[string]interface{} "Invalid quantity"
// @Failure 404 {object} map[string]interface{} "Meal or entry not found"
// @Router /diary/{date}/meals/{pos}/foods/{index} [patch]
func (dc *DiaryController) ChangeQuantity(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.fail(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	pos, ok := dc.mealPos(c)
	if !ok {
		return
	}
	index, ok := dc.entryIndex(c)
	if !ok {
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.ChangeQuantity(pos, index, *req.Quantity); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Quantity changed successfully")
}

// RemoveFood godoc
// @Summary Remove a food entry
// @Description Remove an entry from a meal; the persisted record is deleted on the next save
// @Tags diary
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param pos path int true "Meal position"
// @Param index path int true "Entry index inside the meal"
// @Success 200 {object} map[string]interface{} "Food removed successfully"
// @Failure 404 {object} map[string]interface{} "Meal or entry not found"
// @Router /diary/{date}/meals/{pos}/foods/{index} [delete]
func (dc *DiaryController) RemoveFood(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	pos, ok := dc.mealPos(c)
	if !ok {
		return
	}
	index, ok := dc.entryIndex(c)
	if !ok {
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.RemoveFood(pos, index); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Food removed successfully")
}

// AddMeal godoc
// @Summary Add a meal
// @Description Append a new empty meal at the end of the day
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param meal body mealTitleRequest true "Meal title"
// @Success 201 {object} map[string]interface{} "Meal added successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /diary/{date}/meals [post]
func (dc *DiaryController) AddMeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	var req mealTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.fail(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	pos, err := asm.AddMeal(req.Title)
	if err != nil {
		dc.failMutation(c, err)
		return
	}

	dc.invalidate(userID, date)
	day, _ := asm.Day()
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Meal added successfully",
		"data": gin.H{
			"mealPosition": pos,
			"day":          day,
			"dayTotals":    nutrition.DisplayTotals(nutrition.AggregateMeals(day.Meals)),
		},
	})
}

// RenameMeal godoc
// @Summary Rename a meal
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param pos path int true "Meal position"
// @Param meal body mealTitleRequest true "New title"
// @Success 200 {object} map[string]interface{} "Meal renamed successfully"
// @Failure 404 {object} map[string]interface{} "Meal not found"
// @Router /diary/{date}/meals/{pos} [patch]
func (dc *DiaryController) RenameMeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	var req mealTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.fail(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	pos, ok := dc.mealPos(c)
	if !ok {
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.RenameMeal(pos, req.Title); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Meal renamed successfully")
}

// DeleteMeal godoc
// @Summary Delete a meal
// @Description Remove a meal and all of its entries; remaining meals are renumbered
// @Tags diary
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param pos path int true "Meal position"
// @Success 200 {object} map[string]interface{} "Meal deleted successfully"
// @Failure 404 {object} map[string]interface{} "Meal not found"
// @Router /diary/{date}/meals/{pos} [delete]
func (dc *DiaryController) DeleteMeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	pos, ok := dc.mealPos(c)
	if !ok {
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.DeleteMeal(pos); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Meal deleted successfully")
}

// ReorderMeals godoc
// @Summary Reorder the day's meals
// @Description Rearrange meals; the order array lists current positions in their new sequence
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param order body reorderMealsRequest true "New order"
// @Success 200 {object} map[string]interface{} "Meals reordered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid order"
// @Router /diary/{date}/meals/order [put]
func (dc *DiaryController) ReorderMeals(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	var req reorderMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.fail(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}
	if err := asm.ReorderMeals(req.Order); err != nil {
		dc.failMutation(c, err)
		return
	}
	dc.mutated(c, asm, userID, date, "Meals reordered successfully")
}

// SaveDiaryDay godoc
// @Summary Save a diary day
// @Description Persist the day's cumulative in-memory state; partial failures are reported per entity and the day stays dirty for retry
// @Tags diary
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Diary day saved successfully"
// @Failure 409 {object} map[string]interface{} "A save is already in flight"
// @Failure 500 {object} map[string]interface{} "Failed to save diary day"
// @Router /diary/{date}/save [post]
func (dc *DiaryController) SaveDiaryDay(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	date := c.Param("date")

	asm, err := dc.assembly(c, userID, date)
	if err != nil {
		return
	}

	result, err := asm.Save(c.Request.Context())
	dc.invalidate(userID, date)
	if err != nil {
		if errors.Is(err, diary.ErrSaveInFlight) {
			dc.fail(c, http.StatusConflict, "A save is already in flight", err)
			return
		}
		dc.fail(c, http.StatusInternalServerError, "Failed to save diary day", err)
		return
	}
	if !result.Ok() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Diary day saved with failures",
			"error":   "some records could not be persisted; the day remains dirty for retry",
			"data":    gin.H{"failures": result.Failures, "state": asm.State().String()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Diary day saved successfully",
		"data":    gin.H{"state": asm.State().String()},
	})
}

func (dc *DiaryController) assembly(c *gin.Context, userID uint, date string) (*diary.Assembly, error) {
	asm, err := dc.manager.Day(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, diary.ErrBadDate) {
			dc.fail(c, http.StatusBadRequest, "Invalid date", err)
		} else {
			dc.fail(c, http.StatusInternalServerError, "Failed to load diary day", err)
		}
		return nil, err
	}
	return asm, nil
}

// mutated is the shared tail of every in-memory edit: drop the cached
// copy and answer with the updated day and its display totals.
func (dc *DiaryController) mutated(c *gin.Context, asm *diary.Assembly, userID uint, date, message string) {
	dc.invalidate(userID, date)
	day, err := asm.Day()
	if err != nil {
		dc.fail(c, http.StatusInternalServerError, "Failed to retrieve diary day", err)
		return
	}
	dc.respondDay(c, http.StatusOK, message, &day)
}

func (dc *DiaryController) respondDay(c *gin.Context, status int, message string, day *models.FoodDiaryDay) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data": gin.H{
			"day":       day,
			"dayTotals": nutrition.DisplayTotals(nutrition.AggregateMeals(day.Meals)),
		},
	})
}

func (dc *DiaryController) invalidate(userID uint, date string) {
	if err := dc.cache.InvalidateDiaryDay(userID, date); err != nil {
		log.Printf("Failed to invalidate cached diary day %d/%s: %v", userID, date, err)
	}
}

func (dc *DiaryController) failMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, nutrition.ErrInvalidQuantity):
		dc.fail(c, http.StatusBadRequest, "Invalid quantity", err)
	case errors.Is(err, diary.ErrMealNotFound):
		dc.fail(c, http.StatusNotFound, "Meal not found", err)
	case errors.Is(err, diary.ErrEntryNotFound):
		dc.fail(c, http.StatusNotFound, "Food entry not found", err)
	case errors.Is(err, diary.ErrEntryRemoved):
		dc.fail(c, http.StatusConflict, "Food entry already removed", err)
	case errors.Is(err, diary.ErrBadReorder):
		dc.fail(c, http.StatusBadRequest, "Invalid meal order", err)
	default:
		dc.fail(c, http.StatusInternalServerError, "Failed to update diary day", err)
	}
}

func (dc *DiaryController) fail(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

func (dc *DiaryController) mealPos(c *gin.Context) (int, bool) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 0 {
		dc.fail(c, http.StatusBadRequest, "Invalid meal position", errors.New("meal position must be a non-negative integer"))
		return 0, false
	}
	return pos, true
}

func (dc *DiaryController) entryIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		dc.fail(c, http.StatusBadRequest, "Invalid entry index", errors.New("entry index must be a non-negative integer"))
		return 0, false
	}
	return index, true
}

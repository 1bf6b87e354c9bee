package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"nutridiary/internal/cache"
	"nutridiary/internal/middleware"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FoodController struct {
	repo  repository.FoodRepository
	goals repository.GoalsRepository
	cache *cache.RedisClient
}

func NewFoodController(repo repository.FoodRepository, goals repository.GoalsRepository, cache *cache.RedisClient) *FoodController {
	return &FoodController{repo: repo, goals: goals, cache: cache}
}

type createFoodRequest struct {
	Title          string                 `json:"title" binding:"required"`
	Quantity       float64                `json:"quantity" binding:"required"`
	MacroNutrients models.MacroNutrients  `json:"macroNutrients"`
	MicroNutrients *models.MicroNutrients `json:"microNutrients"`
}

// ListFoods godoc
// @Summary List foods
// @Description List reference-table and custom foods, optionally filtered by a search query
// @Tags food
// @Produce json
// @Param search query string false "Search query"
// @Success 200 {object} map[string]interface{} "Foods retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve foods"
// @Router /foods [get]
func (fc *FoodController) ListFoods(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	foods, err := fc.repo.Search(userID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve foods",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Foods retrieved successfully",
		"data":    foods,
	})
}

// GetReferenceFoods godoc
// @Summary Get the reference food table
// @Description Retrieve the static reference food table (cached)
// @Tags food
// @Produce json
// @Success 200 {object} map[string]interface{} "Reference foods retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve reference foods"
// @Router /foods/reference [get]
func (fc *FoodController) GetReferenceFoods(c *gin.Context) {
	if foods, ok, err := fc.cache.GetReferenceFoods(); err == nil && ok {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Reference foods retrieved successfully",
			"data":    foods,
		})
		return
	}

	foods, err := fc.repo.LoadReferenceFoods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve reference foods",
			"error":   err.Error(),
		})
		return
	}
	if err := fc.cache.StoreReferenceFoods(foods); err != nil {
		log.Printf("Failed to cache reference foods: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reference foods retrieved successfully",
		"data":    foods,
	})
}

// GetFood godoc
// @Summary Get a food with its nutrition facts
// @Description Retrieve one food by id, including percent-of-daily-value rows computed against the user's goals
// @Tags food
// @Produce json
// @Param id path int true "Food ID"
// @Success 200 {object} map[string]interface{} "Food retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid food ID"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /foods/{id} [get]
func (fc *FoodController) GetFood(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid food ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	food, err := fc.repo.FindByID(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to retrieve food"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
			message = "Food not found"
		}
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	userID, _ := middleware.UserID(c)
	goals, err := fc.goals.LoadGoals(c.Request.Context(), userID)
	if err != nil {
		goals = models.DefaultDailyGoals()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food retrieved successfully",
		"data": gin.H{
			"food":        food,
			"dailyValues": dailyValueRows(food, goals),
		},
	})
}

// CreateCustomFood godoc
// @Summary Create a custom food
// @Description Create a user-authored food; calories are derived from the macros, never accepted from the client
// @Tags food
// @Accept json
// @Produce json
// @Param food body createFoodRequest true "Food data"
// @Success 201 {object} map[string]interface{} "Food created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Failed to create food"
// @Router /foods [post]
func (fc *FoodController) CreateCustomFood(c *gin.Context) {
	var req createFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Quantity must be positive",
		})
		return
	}
	if req.MacroNutrients.Carbs < 0 || req.MacroNutrients.Fats < 0 || req.MacroNutrients.Protein < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Macronutrients must be non-negative",
		})
		return
	}

	userID, _ := middleware.UserID(c)
	food := models.Food{
		UserID: userID,
		Title:  req.Title,
		NutrientProfile: models.NutrientProfile{
			Macros:   req.MacroNutrients,
			Quantity: req.Quantity,
			Micros:   req.MicroNutrients,
		},
	}

	if err := fc.repo.CreateCustomFood(&food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create food",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Food created successfully",
		"data":    food,
	})
}

// dailyValueRows computes the percent-of-daily-value column of the
// nutrition facts panel. Macro rows compare calorie slices of the
// user's goals; micros compare against their absolute references, with
// "**" wherever a value or reference is missing. The three fat
// subtypes count toward the fat-calorie slice.
func dailyValueRows(food *models.Food, goals models.DailyGoals) map[string]string {
	fatSlice := goals.Fats * nutrition.KcalPerGramFats
	rows := map[string]string{
		"calories": nutrition.DisplayPercent(&food.Calories, 1, goals.Calories),
		"carbs":    nutrition.DisplayPercent(&food.Macros.Carbs, nutrition.KcalPerGramCarbs, goals.Carbs*nutrition.KcalPerGramCarbs),
		"fats":     nutrition.DisplayPercent(&food.Macros.Fats, nutrition.KcalPerGramFats, fatSlice),
		"protein":  nutrition.DisplayPercent(&food.Macros.Protein, nutrition.KcalPerGramProtein, goals.Protein*nutrition.KcalPerGramProtein),
	}

	for _, key := range nutrition.MicroOrder {
		value := nutrition.MicroValue(food.Micros, key)
		switch key {
		case "saturatedFats", "monounsaturatedFats", "polyunsaturatedFats":
			rows[key] = nutrition.DisplayPercent(value, nutrition.KcalPerGramFats, fatSlice)
		default:
			rows[key] = nutrition.DisplayPercent(value, 1, nutrition.MicroReference[key].DailyReference)
		}
	}
	return rows
}

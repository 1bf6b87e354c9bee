package controllers

import (
	"log"
	"net/http"

	"nutridiary/internal/cache"
	"nutridiary/internal/diary"
	"nutridiary/internal/middleware"
	"nutridiary/internal/models"
	"nutridiary/internal/repository"
	"nutridiary/internal/utils"

	"github.com/gin-gonic/gin"
)

type GoalsController struct {
	repo    repository.GoalsRepository
	manager *diary.Manager
	cache   *cache.RedisClient
}

func NewGoalsController(repo repository.GoalsRepository, manager *diary.Manager, cache *cache.RedisClient) *GoalsController {
	return &GoalsController{repo: repo, manager: manager, cache: cache}
}

// saveGoalsRequest accepts goals either as gram targets or as a calorie
// budget with macro percentages; percentages win when all three are set.
type saveGoalsRequest struct {
	Calories       float64 `json:"calories" binding:"required"`
	Carbs          float64 `json:"carbs"`
	Fats           float64 `json:"fats"`
	Protein        float64 `json:"protein"`
	CarbsPercent   float64 `json:"carbsPercent"`
	FatsPercent    float64 `json:"fatsPercent"`
	ProteinPercent float64 `json:"proteinPercent"`
}

// GetGoals godoc
// @Summary Get the user's daily goals
// @Description Retrieve the current daily goals, falling back to the 2000 kcal 50/30/20 default
// @Tags goals
// @Produce json
// @Success 200 {object} map[string]interface{} "Goals retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve goals"
// @Router /goals [get]
func (gc *GoalsController) GetGoals(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	goals, err := gc.repo.LoadGoals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve goals",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Goals retrieved successfully",
		"data":    goals,
	})
}

// SaveGoals godoc
// @Summary Save the user's daily goals
// @Description Store new daily goals and propagate them to today's and future diary days; past days keep their snapshots
// @Tags goals
// @Accept json
// @Produce json
// @Param goals body saveGoalsRequest true "Goals data"
// @Success 200 {object} map[string]interface{} "Goals saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Failed to save goals"
// @Router /goals [put]
func (gc *GoalsController) SaveGoals(c *gin.Context) {
	var req saveGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	if req.Calories <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Calories must be positive",
		})
		return
	}

	var goals models.DailyGoals
	switch {
	case req.CarbsPercent > 0 && req.FatsPercent > 0 && req.ProteinPercent > 0:
		if req.CarbsPercent+req.FatsPercent+req.ProteinPercent != 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid request data",
				"error":   "Macro percentages must add up to 100",
			})
			return
		}
		goals = models.GoalsFromPercents(req.Calories, req.CarbsPercent, req.FatsPercent, req.ProteinPercent)
	case req.Carbs >= 0 && req.Fats >= 0 && req.Protein >= 0:
		goals = models.DailyGoals{
			Calories: req.Calories,
			Carbs:    req.Carbs,
			Fats:     req.Fats,
			Protein:  req.Protein,
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Macro targets must be non-negative",
		})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := gc.repo.SaveGoals(c.Request.Context(), userID, goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save goals",
			"error":   err.Error(),
		})
		return
	}

	// The save rewrote the goal snapshots of today's and future days in
	// the database; in-memory sessions and cached copies of those days
	// must reload or they keep serving the old numbers.
	gc.manager.EvictFrom(userID, utils.TodayString())
	if err := gc.cache.InvalidateUserDiary(userID); err != nil {
		log.Printf("Failed to invalidate cached diary days for user %d: %v", userID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Goals saved successfully",
		"data":    goals,
	})
}

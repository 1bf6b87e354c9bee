package routes

import (
	"nutridiary/internal/controllers"
	"nutridiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDiaryRoutes(router *gin.Engine, diaryController *controllers.DiaryController) {
	diaryRoutes := router.Group("/diary")
	diaryRoutes.Use(middleware.AuthMiddleware())
	{
		diaryRoutes.GET("/:date", diaryController.GetDiaryDay)
		diaryRoutes.POST("/:date/save", diaryController.SaveDiaryDay)

		diaryRoutes.POST("/:date/meals", diaryController.AddMeal)
		diaryRoutes.PUT("/:date/meals/order", diaryController.ReorderMeals)
		diaryRoutes.PATCH("/:date/meals/:pos", diaryController.RenameMeal)
		diaryRoutes.DELETE("/:date/meals/:pos", diaryController.DeleteMeal)

		diaryRoutes.POST("/:date/meals/:pos/foods", diaryController.AddFood)
		diaryRoutes.PATCH("/:date/meals/:pos/foods/:index", diaryController.ChangeQuantity)
		diaryRoutes.DELETE("/:date/meals/:pos/foods/:index", diaryController.RemoveFood)
	}
}

package routes

import (
	"nutridiary/internal/controllers"
	"nutridiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterFoodRoutes(router *gin.Engine, foodController *controllers.FoodController) {
	foodRoutes := router.Group("/foods")
	foodRoutes.Use(middleware.AuthMiddleware())
	{
		foodRoutes.GET("/", foodController.ListFoods)
		foodRoutes.GET("/reference", foodController.GetReferenceFoods)
		foodRoutes.GET("/:id", foodController.GetFood)
		foodRoutes.POST("/", foodController.CreateCustomFood)
	}
}

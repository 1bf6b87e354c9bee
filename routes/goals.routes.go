package routes

import (
	"nutridiary/internal/controllers"
	"nutridiary/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterGoalsRoutes(router *gin.Engine, goalsController *controllers.GoalsController) {
	goalsRoutes := router.Group("/goals")
	goalsRoutes.Use(middleware.AuthMiddleware())
	{
		goalsRoutes.GET("/", goalsController.GetGoals)
		goalsRoutes.PUT("/", goalsController.SaveGoals)
	}
}

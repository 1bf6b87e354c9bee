package main

import (
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"nutridiary/database"
	"nutridiary/internal/cache"
	"nutridiary/internal/controllers"
	"nutridiary/internal/diary"
	"nutridiary/internal/repository"
	"nutridiary/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load("../.env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is optional: a nil client degrades to an uncached server.
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize repositories
	foodRepo := repository.NewFoodRepository(database.DB)
	goalsRepo := repository.NewGoalsRepository(database.DB)
	diaryRepo := repository.NewDiaryRepository(database.DB)

	// Warm the reference food table so the first search does not pay the
	// database round trip.
	if foods, err := foodRepo.LoadReferenceFoods(); err != nil {
		log.Printf("Warning: failed to preload reference foods: %v", err)
	} else {
		log.Printf("Loaded %d reference foods", len(foods))
		if err := redisClient.StoreReferenceFoods(foods); err != nil {
			log.Printf("Warning: failed to cache reference foods: %v", err)
		}
	}

	diaryManager := diary.NewManager(diaryRepo, goalsRepo)

	// Initialize controllers
	foodController := controllers.NewFoodController(foodRepo, goalsRepo, redisClient)
	diaryController := controllers.NewDiaryController(diaryManager, foodRepo, redisClient)
	goalsController := controllers.NewGoalsController(goalsRepo, diaryManager, redisClient)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":  "Nutridiary API is running",
			"version":  "1.0.0",
			"status":   "healthy",
			"database": "PostgreSQL",
			"cache":    redisClient != nil,
		})
	})

	routes.RegisterFoodRoutes(router, foodController)
	routes.RegisterDiaryRoutes(router, diaryController)
	routes.RegisterGoalsRoutes(router, goalsController)

	// Debug endpoints
	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		c.JSON(200, gin.H{
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      m.Alloc / 1024 / 1024,
			"diary_sessions": diaryManager.Sessions(),
		})
	})

	router.GET("/debug/cache", func(c *gin.Context) {
		status, err := redisClient.GetStatus()
		if err != nil {
			c.JSON(500, gin.H{"cache_health": false, "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"cache_health": true, "status": status})
	})

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"database_health": false, "error": err.Error()})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		c.JSON(200, gin.H{"database_health": err == nil && result == 1})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Nutridiary API Server starting on port %s", port)
	log.Printf("Database Health: http://localhost:%s/debug/database", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

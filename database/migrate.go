package database

import (
	"log"

	"nutridiary/internal/models"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.Food{},
		&models.FoodDiaryDay{},
		&models.Meal{},
		&models.MealFoodEntry{},
		&models.UserGoals{},
	)

	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultFoodsFile is where the seeder looks for the reference food
// table when no --file flag is given.
const DefaultFoodsFile = "data/foods.json"

// SeedReferenceFoods loads the reference food table from a JSON file
// into the foods table. Existing reference rows are replaced; custom
// foods are preserved.
func SeedReferenceFoods(path string) error {
	db, err := connectToDatabase()
	if err != nil {
		return err
	}

	foods, err := loadFoodsFile(path)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d foods from %s", len(foods), path)

	if err := db.AutoMigrate(&models.Food{}); err != nil {
		return fmt.Errorf("failed to migrate foods table: %v", err)
	}

	result := db.Unscoped().Where("is_custom = ?", false).Delete(&models.Food{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear reference foods: %v", result.Error)
	}
	log.Printf("Removed %d previous reference foods", result.RowsAffected)

	startTime := time.Now()
	if err := db.CreateInBatches(&foods, 100).Error; err != nil {
		return fmt.Errorf("failed to insert reference foods: %v", err)
	}

	log.Printf("Seeded %d reference foods in %s", len(foods), time.Since(startTime))
	return nil
}

// ClearReferenceFoods removes every non-custom food.
func ClearReferenceFoods() error {
	db, err := connectToDatabase()
	if err != nil {
		return err
	}

	result := db.Unscoped().Where("is_custom = ?", false).Delete(&models.Food{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear reference foods: %v", result.Error)
	}

	log.Printf("Deleted %d reference foods", result.RowsAffected)
	return nil
}

// FoodCounts reports how many reference and custom foods are stored.
func FoodCounts() (reference, custom int64, err error) {
	db, err := connectToDatabase()
	if err != nil {
		return 0, 0, err
	}

	if err := db.Model(&models.Food{}).Where("is_custom = ?", false).Count(&reference).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count reference foods: %v", err)
	}
	if err := db.Model(&models.Food{}).Where("is_custom = ?", true).Count(&custom).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count custom foods: %v", err)
	}
	return reference, custom, nil
}

// loadFoodsFile parses the food table file and normalizes every row:
// reference foods are never custom, and their calories are re-derived
// from the macros so the table is internally consistent.
func loadFoodsFile(path string) ([]models.Food, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read foods file: %v", err)
	}

	var foods []models.Food
	if err := json.Unmarshal(data, &foods); err != nil {
		return nil, fmt.Errorf("failed to parse foods file: %v", err)
	}

	for i := range foods {
		foods[i].ID = 0
		foods[i].UserID = 0
		foods[i].IsCustom = false
		foods[i].Calories = nutrition.Calories(foods[i].Macros)
		if foods[i].Quantity == 0 {
			foods[i].Quantity = 100
		}
	}
	return foods, nil
}

func connectToDatabase() (*gorm.DB, error) {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "nutridiary")
	dbSSLMode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, dbSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

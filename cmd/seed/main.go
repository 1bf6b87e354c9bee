package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nutridiary/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	foodsFile := seedCmd.String("file", utils.DefaultFoodsFile, "JSON file with the reference food table")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		log.Printf("Seeding reference foods from %s", *foodsFile)
		if err := utils.SeedReferenceFoods(*foodsFile); err != nil {
			log.Fatalf("Error seeding reference foods: %v", err)
		}

	case "clear":
		log.Println("Clearing reference foods")
		if err := utils.ClearReferenceFoods(); err != nil {
			log.Fatalf("Error clearing reference foods: %v", err)
		}

	case "stats":
		reference, custom, err := utils.FoodCounts()
		if err != nil {
			log.Fatalf("Error getting stats: %v", err)
		}
		log.Printf("Reference foods: %d", reference)
		log.Printf("Custom foods:    %d", custom)

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Database utility tool for Nutridiary")
	fmt.Println("\nUsage:")
	fmt.Println("  db-tool COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Load the reference food table from a JSON file")
	fmt.Println("               Options:")
	fmt.Println("                 --file=PATH     Foods file (default: data/foods.json)")
	fmt.Println("")
	fmt.Println("  clear        Delete every reference food (custom foods are kept)")
	fmt.Println("")
	fmt.Println("  stats        Show reference and custom food counts")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  db-tool seed --file=data/foods.json")
	fmt.Println("  db-tool stats")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST      Database host (default: localhost)")
	fmt.Println("  DB_PORT      Database port (default: 5432)")
	fmt.Println("  DB_USER      Database user (default: postgres)")
	fmt.Println("  DB_PASSWORD  Database password (default: postgres)")
	fmt.Println("  DB_NAME      Database name (default: nutridiary)")
	fmt.Println("  DB_SSLMODE   Database SSL mode (default: disable)")
}

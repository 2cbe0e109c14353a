package main

import (
	"log"
	"os"

	"ai-mathteach-be/internal/model"
	"ai-mathteach-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Difficulty Levels...")

	difficulties := []model.Difficulty{
		{Name: "Easy", Level: 1},
		{Name: "Medium", Level: 2},
		{Name: "Hard", Level: 3},
	}

	for _, d := range difficulties {
		var existing model.Difficulty
		if err := db.Where("name = ?", d.Name).First(&existing).Error; err == nil {
			log.Printf("Difficulty '%s' already exists, skipping...", d.Name)
			continue
		}

		if err := db.Create(&d).Error; err != nil {
			log.Printf("Error creating difficulty '%s': %v", d.Name, err)
		} else {
			log.Printf("Created difficulty: %s (level %d)", d.Name, d.Level)
		}
	}

	log.Println("Difficulty seeding completed!")
}

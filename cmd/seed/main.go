package main

import (
	"fmt"
	"log"
	"os"

	"moodyme/backend/internal/database"
	"moodyme/backend/internal/seeders"
	appcfg "moodyme/backend/pkg/config"
)

// The seed command connects to the database, applies pending migrations and
// inserts the default content pages plus the first admin account. Run it once
// after provisioning a new environment:
//
//	ADMIN_EMAIL=admin@moodyme.com ADMIN_PASSWORD=... go run ./cmd/seed
func main() {
	cfg := appcfg.Cfg

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	if err := database.ConnectDB(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.MigrateDB(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if err := seeders.SeedInitialData(database.GetDB(), adminEmail, adminPassword); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Database seeding completed.")
}

package main

import (
	"log"
	"os"

	"checkinly-be/internal/model"
	"checkinly-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate doesn't handle
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Property{},
		&model.Guest{},
		&model.Deposit{},
		&model.DepositRefund{},
		&model.WebhookEvent{},
		&model.ArrivalGuide{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: supporting indexes for hot query paths
	log.Println("Step 3: Creating Indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_deposits_status_created_at ON deposits (status, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_external_payment_ref ON deposits (external_payment_ref);`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_events_event_key ON webhook_events (event_key);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

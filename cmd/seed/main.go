// Command seed populates the database with demo data: one user, two
// monitors, and three simulated failures.
package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/apipulse/api-pulse/internal/config"
	"github.com/apipulse/api-pulse/internal/database"
	"github.com/apipulse/api-pulse/internal/models"
	"github.com/apipulse/api-pulse/internal/simulation"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch cfg.Database.Type {
	case "postgres":
		if err := database.RunMigrations(cfg.Database); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	case "sqlite":
		if err := db.AutoMigrate(&models.User{}, &models.Monitor{}, &models.Incident{}, &models.Alert{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	log.Println("Starting database seeding...")

	user := seedUser(db, "demo@apipulse.local", "demo123")
	log.Printf("Created demo user: %s", user.Email)

	google := seedMonitor(db, "Google API", "https://www.google.com", 60)
	github := seedMonitor(db, "GitHub API", "https://api.github.com", 120)

	seedFailure(db, google.ID, "timeout", nil)
	seedFailure(db, github.ID, "500", nil)
	latency := 5000
	seedFailure(db, google.ID, "latency", &latency)

	log.Println("Database seeding completed successfully")
	log.Printf("Demo login: %s / demo123", user.Email)
}

func seedUser(db *gorm.DB, email, password string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func seedMonitor(db *gorm.DB, name, url string, interval int) *models.Monitor {
	monitor := models.Monitor{
		Name:               name,
		URL:                url,
		ExpectedStatusCode: 200,
		CheckInterval:      interval,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}
	if err := db.Create(&monitor).Error; err != nil {
		log.Fatalf("Failed to create monitor: %v", err)
	}
	log.Printf("Created monitor: %s (ID: %d)", monitor.Name, monitor.ID)
	return &monitor
}

func seedFailure(db *gorm.DB, monitorID int, failureType string, latencyMS *int) {
	outcome, err := simulation.Simulate(db, monitorID, failureType, latencyMS)
	if err != nil || !outcome.Success {
		log.Fatalf("Failed to simulate %s failure for monitor %d: %v", failureType, monitorID, err)
	}
	log.Printf("Simulated %s failure: incident %d, alert %d", failureType, outcome.IncidentID, outcome.AlertID)
}

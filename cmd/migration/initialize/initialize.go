package initialize

import (
	"os"

	"rcsc-server/config"
	authController "rcsc-server/internal/controllers/auth"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"gorm.io/gorm"
)

// InitializeTables ensures essential production data exists: the first
// moderator account, taken from the ADMIN_EMAIL / ADMIN_PASSWORD
// environment.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin creation")
		return nil
	}

	var existing Moderator
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		log.Info("Admin moderator already exists", "email", email)
		return nil
	}

	hash, err := authController.HashPassword(password)
	if err != nil {
		return log.Err("failed to hash admin password", err)
	}

	admin := Moderator{
		Name:     "Admin",
		Email:    email,
		Password: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return log.Err("failed to create admin moderator", err, "email", email)
	}

	log.Info("Table initialization complete")
	return nil
}

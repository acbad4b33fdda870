package seed

import (
	"rcsc-server/config"
	authController "rcsc-server/internal/controllers/auth"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	if err := seedModerators(db, log); err != nil {
		return err
	}

	return seedRegistrations(db, log)
}

func seedModerators(db *gorm.DB, log logger.Logger) error {
	moderators := []Moderator{
		{
			Name:  "Ayon Sarker",
			Email: "ayon.sarker@gmail.com",
		}, {
			Name:  "Nafis Rahman",
			Email: "nafis.rahman@gmail.com",
		},
	}

	for _, moderator := range moderators {
		var existing Moderator
		if err := db.First(&existing, "email = ?", moderator.Email).Error; err == nil {
			log.Info("Moderator already exists", "email", moderator.Email)
			continue
		}

		hash, err := authController.HashPassword("password")
		if err != nil {
			return log.Err("failed to hash password", err)
		}
		moderator.Password = hash

		log.Info("Seeding moderator", "email", moderator.Email)
		if err := db.Create(&moderator).Error; err != nil {
			log.Er("failed to create moderator", err, "email", moderator.Email)
		}
	}

	return nil
}

func seedRegistrations(db *gorm.DB, log logger.Logger) error {
	registrations := []Registration{
		{
			FullName:       "Tahmid Hasan",
			ClassGrade:     "XI",
			Section:        "A",
			CNo:            "1021",
			Wing:           "EMMS",
			Email:          "tahmid.hasan@gmail.com",
			Phone:          "01712345678",
			Whatsapp:       stringPtr("01712345678"),
			MembershipType: MembershipWithTshirt,
			TshirtSize:     stringPtr("M"),
			BkashNumber:    "01712345678",
			TransactionID:  "TX1A2B3C",
		}, {
			FullName:       "Sadia Islam",
			ClassGrade:     "X",
			Section:        "B",
			CNo:            "2045",
			Wing:           "BMDS",
			Email:          "sadia.islam@yahoo.com",
			Phone:          "01898765432",
			MembershipType: MembershipWithoutTshirt,
			BkashNumber:    "01898765432",
			TransactionID:  "TX9Z8Y7X",
		},
	}

	for _, registration := range registrations {
		var existing Registration
		if err := db.First(&existing, "transaction_id = ?", registration.TransactionID).Error; err == nil {
			log.Info("Registration already exists", "transactionID", registration.TransactionID)
			continue
		}
		log.Info("Seeding registration", "transactionID", registration.TransactionID)
		if err := db.Create(&registration).Error; err != nil {
			log.Er("failed to create registration", err, "transactionID", registration.TransactionID)
		}
	}

	return nil
}

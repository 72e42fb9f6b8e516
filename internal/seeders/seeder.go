package seeders

import (
	"moodyme/backend/internal/models"
	mmlog "moodyme/backend/pkg/log"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInitialData populates the database with the data a fresh install needs:
// the default content pages and, when configured, the first admin account.
// Every seeder checks for existing rows before inserting so the command is
// safe to run repeatedly.
func SeedInitialData(db *gorm.DB, adminEmail, adminPassword string) error {
	log := mmlog.L.Named("SeedInitialData")
	log.Info("Seeding initial data...")

	if err := SeedContentPages(db); err != nil {
		log.Error("Failed to seed content pages", zap.Error(err))
		return err
	}

	if adminEmail != "" && adminPassword != "" {
		if err := seedAdminUser(db, adminEmail, adminPassword); err != nil {
			log.Error("Failed to seed admin user", zap.Error(err))
			return err
		}
	} else {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user seeding")
	}

	log.Info("Initial data seeding completed successfully.")
	return nil
}

// seedAdminUser creates the first back-office administrator if no account
// with the given email exists yet.
func seedAdminUser(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		mmlog.L.Info("Admin user already exists, skipping", zap.String("email", email))
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName:    "MoodyMe",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	mmlog.L.Info("Admin user created", zap.String("email", admin.Email))
	return nil
}

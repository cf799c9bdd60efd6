package seeders

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/auth"
	"github.com/aldeanavidad/tienda/pkg/logger"
)

// adminSeeder creates the bootstrap admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD / ADMIN_NAME. It is idempotent: an existing account
// with that email is left untouched.
func adminSeeder(db *gorm.DB) error {
	email := config.AdminEmail()
	password := config.AdminPassword()

	if email == "" || password == "" {
		logger.Warn("seed: ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	}
	if count > 0 {
		logger.Info("seed: admin account already exists", "email", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}

	admin := models.User{
		Name:     config.AdminName(),
		Email:    email,
		Password: hash,
		Role:     "admin",
		Active:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}

	logger.Info("seed: admin account created", "email", email)
	return nil
}

func init() {
	Register(Seeder{Name: "admin", Run: adminSeeder})
}

package configs

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pos-backend/entity"
	"pos-backend/pkg/authz"
)

// SeedAdmin guarantees a usable administrator account exists on first
// boot. Nothing is touched when the username is already taken.
func SeedAdmin(cfg *Config) error {
	var existing entity.User
	err := db.Where("username = ?", cfg.AdminUser).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Username:     cfg.AdminUser,
		Email:        cfg.AdminUser + "@localhost",
		Password:     string(hashed),
		IsSuperuser:  true,
		IsActive:     true,
		Capabilities: authz.CapAdmin,
	}
	return db.Create(&admin).Error
}

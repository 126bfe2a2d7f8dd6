package bootstrap

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/pkg/logger"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Activity{},
		&model.ActivityCompletion{},
		&model.PointsAdjustment{},
	)
}

// SeedAdminUser creates the bootstrap admin account if none exists yet.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Sugar.Info("admin user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Sugar.Infow("admin user seeded", "email", email)
	return nil
}

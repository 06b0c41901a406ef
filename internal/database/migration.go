package database

import (
	"fmt"

	"github.com/yy933/twitter-api-2020/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Reply{},
		&models.Like{},
		&models.Followship{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

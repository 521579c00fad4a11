package database

import (
	"gorm.io/gorm"

	"github.com/kbhandari/portfolio-api/internal/models"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PendingMessage{},
	)
}

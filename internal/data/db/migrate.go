package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/leadbridge-backend/internal/domain/leads"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(leads.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"kitchen-ledger/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// Parents are listed before the tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Ingredient{},
		&models.MenuItem{},
		&models.RecipeRequirement{},
		&models.Purchase{},
		&models.AuditLog{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

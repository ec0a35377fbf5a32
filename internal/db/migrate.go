package db

import (
	"fmt"

	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Session{},
		&models.Worker{},
		&models.WorkItem{},
		&models.GibunPriority{},
		&models.Assignment{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every Manshift table and recreates the schema.
func Reset(db *gorm.DB) error {
	ms := AllModels()
	// Drop dependents first so engines without deferred constraints cope.
	for i := len(ms) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(ms[i]); err != nil {
			return fmt.Errorf("db: drop table: %w", err)
		}
	}
	return AutoMigrate(db)
}

// Package gormrepo persists decisions and healing audit entries in Postgres.
package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every row model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&DecisionRow{}, &HealingRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

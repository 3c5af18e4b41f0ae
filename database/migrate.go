// Package database owns the GORM connection and schema migration.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"essaylab_backend/internal/models"
)

// Connect opens a GORM connection and verifies it with a ping.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get *sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate migrates every model. Order matters: parents before the
// tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RefreshToken{},
		&models.College{},
		&models.Programme{},
		&models.Essay{},
		&models.EssayScore{},
		&models.EssayAnalytics{},
		&models.EssayAnalysis{},
		&models.AnalysisSession{},
		&models.SuccessfulEssay{},
		&models.TrainingEssay{},
	)
}

package config

import (
	"log/slog"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("database connection established")
	return db, nil
}

// Migrate creates or updates the tables backing users, profiles and alerts.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.SleepProfile{}, &domain.Alert{})
}

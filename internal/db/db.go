package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locker-admin-backend/config"
	"locker-admin-backend/internal/model"
)

// Init opens the push-subscription registry database and runs migrations.
// The registry is the only local persistence this service owns; locker and
// reservation state stays in the remote document store.
func Init(cfg *config.RegistryConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to registry database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running registry migrations...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}

// Migrate applies the registry schema. Split out so tests can run it
// against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.PushSubscription{},
		&model.WatchedLocker{},
	)
}

package database

import (
	"fmt"
	"log"

	"github.com/chachabrian/covoit-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormConfig is shared by the server, the worker and the repository tests.
// Every write in the repositories is a single guarded statement, so gorm's
// implicit transactions are skipped. TranslateError maps unique violations
// onto gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// InitDB opens the pool, applies pool limits and runs migrations.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Printf("Database connected: %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}

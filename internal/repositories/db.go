// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"fmt"
	"log"
	"os"
	"time"

	"cardkeeper/internal/config"
	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// DSN builds the Postgres connection string.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// InitDB opens the connection, applies the pool settings and migrates the schema.
func InitDB(cfg config.DBConfig) error {
	// Ignore "record not found", it is an expected outcome of lookups
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !config.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{Logger: newLogger})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&models.Card{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	DB = db
	logger.Info("PostgreSQL connected & migrations applied",
		logger.LoggerOptions{Key: "database", Data: cfg.Name},
	)
	return nil
}

// CloseDB closes the global connection if one is open.
func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Warning("failed to get database instance", logger.LoggerOptions{Key: "error", Data: err.Error()})
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warning("failed to close database connection", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}

package database

import (
	"fmt"
	"os"

	mmlog "moodyme/backend/pkg/log"

	"github.com/golang-migrate/migrate/v4"
	postgresdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB initializes the database connection.
func ConnectDB(dsn string) error {
	var err error
	logLevel := logger.Silent
	if os.Getenv("APP_ENV") == "development" {
		logLevel = logger.Info
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Unique-index violations must surface as gorm.ErrDuplicatedKey so the
		// reset coordinator can tell a code collision from other failures.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	mmlog.L.Info("Database connection established.")
	return nil
}

// MigrateDB applies the SQL migrations under internal/database/migrations
// using golang-migrate. ConnectDB must have been called first.
func MigrateDB() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized, call ConnectDB first")
	}
	log := mmlog.L.Named("MigrateDB")

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, err := postgresdriver.WithInstance(sqlDB, &postgresdriver.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver for migrate: %w", err)
	}

	// The path is relative to the working directory of the binary; the server is
	// expected to run from the repository root.
	sourceURL := "file://internal/database/migrations"
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate with source '%s': %w", sourceURL, err)
	}

	log.Info("Applying database migrations...")
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Warn("Could not get migration version after applying", zap.Error(err))
	} else {
		log.Info("Database migrations applied.", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}

// GetDB returns the current database instance.
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the database instance. Intended for tests.
func SetDB(db *gorm.DB) {
	DB = db
}

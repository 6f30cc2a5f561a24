package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/waveform-comments/internal/models"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// TableStatus reports whether a model's table is present
type TableStatus struct {
	Table  string
	Exists bool
}

// Initialize creates a new database connection with the provided configuration
func Initialize(dbPath string, verbose bool) (*DB, error) {
	inMemory := dbPath == "" || dbPath == ":memory:"

	// Ensure the database directory exists
	if !inMemory {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	// Configure GORM logger
	logLevel := logger.Error
	if verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every connection to :memory: opens its own empty database
	if inMemory {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: db}, nil
}

// dsn enables foreign keys so deleting a comment cascades to its marker
func dsn(dbPath string) string {
	if dbPath == "" {
		dbPath = ":memory:"
	}
	return dbPath + "?_foreign_keys=on"
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("[INFO] Successfully migrated %d model(s)", len(models))
	return nil
}

// Migrate brings the schema up to date with every application model
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseMigration, "schema migration failed")
	}
	return nil
}

// MigrationStatus lists the application tables and whether each exists
func (db *DB) MigrationStatus() ([]TableStatus, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	migrator := db.DB.Migrator()
	var status []TableStatus
	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model: %w", err)
		}
		status = append(status, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: migrator.HasTable(model),
		})
	}
	return status, nil
}

// Package database opens the relational store behind the product repository.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"katalog/internal/config"
	"katalog/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database named by driver and dsn, creates the
// products table when missing and verifies the connection.
func Open(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	log.Info().Str("driver", driver).Msg("database ready")
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite:
		return sqlite.Open(ResolveSQLitePath(dsn)), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ResolveSQLitePath anchors a relative sqlite file path at the directory of
// the running executable. DSNs using the file: scheme or :memory: are kept as is.
func ResolveSQLitePath(dsn string) string {
	if dsn == "" || dsn == ":memory:" || filepath.IsAbs(dsn) || strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	exe, err := os.Executable()
	if err != nil {
		return dsn
	}
	return filepath.Join(filepath.Dir(exe), dsn)
}

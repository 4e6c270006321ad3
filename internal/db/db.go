// Package db opens the agency store and keeps its schema current.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/agence-immo/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store named by cfg.URL: PostgreSQL for postgres://
// URLs, a SQLite file otherwise.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		dialector = postgres.Open(cfg.URL)
	} else {
		dialector = sqlite.Open(SQLiteDSN(cfg.URL))
	}

	gdb, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if !cfg.IsPostgres() {
		// SQLite allows a single writer; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Health(context.Background(), gdb); err != nil {
		return nil, err
	}
	zap.S().Infow("database connected", "dialect", gdb.Dialector.Name())
	return gdb, nil
}

// SQLiteDSN enables foreign key enforcement on every connection of the pool.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Health pings the store.
func Health(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

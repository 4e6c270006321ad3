package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies the pending versioned migrations for the dialect of gdb.
// The schema_migrations table records the applied version.
func Migrate(gdb *gorm.DB) error {
	ctx := context.Background()
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	var (
		dir    string
		driver database.Driver
		name   string
	)
	switch gdb.Dialector.Name() {
	case "postgres":
		dir, name = "migrations/postgres", "postgres"
		// The driver holds a dedicated connection; hand it back to the pool
		// once migrations are done.
		var conn *sql.Conn
		conn, err = sqlDB.Conn(ctx)
		if err != nil {
			return fmt.Errorf("migration connection: %w", err)
		}
		defer conn.Close()
		driver, err = migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	case "sqlite":
		dir, name = "migrations/sqlite", "sqlite3"
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", gdb.Dialector.Name())
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	// m.Close would close the shared *sql.DB with the sqlite driver, so the
	// instance is not closed.
	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}
	zap.S().Infow("migrations applied", "version", version)
	return nil
}

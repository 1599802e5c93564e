// Package database opens the quote store and keeps its schema up to date
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stilessandgravel/backend/internal/config"
	"github.com/stilessandgravel/backend/migrations"
)

// migrationsTable keeps this app's migration state apart from anything else sharing the database
const migrationsTable = "quote_schema_migrations"

// Connect opens and pings the configured database.
//
// For sqlite3 the parent directory of the database file is created first.
func Connect(cfg *config.Config) (*sql.DB, error) {
	driver := cfg.Database.Driver

	if driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		// single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies all pending migrations embedded for the given driver
func RunMigrations(db *sql.DB, driver string) error {
	var (
		instance migratedb.Driver
		err      error
	)
	switch driver {
	case config.DriverSQLite:
		instance, err = migratesqlite3.WithInstance(db, &migratesqlite3.Config{
			MigrationsTable: migrationsTable,
		})
	case config.DriverMySQL:
		instance, err = migratemysql.WithInstance(db, &migratemysql.Config{
			MigrationsTable: migrationsTable,
		})
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog" // use slog for structured logging
	"strings"
	"time"

	"topmovies/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Connect opens the store configured by cfg.DatabaseURL and applies pending migrations
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	return Open(cfg.DatabaseURL, logger)
}

// Open opens a gorm handle for dsn. A postgres:// or postgresql:// DSN selects
// Postgres, anything else is treated as a SQLite path (":memory:" included).
func Open(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")

	var dialector gorm.Dialector
	if isPostgres {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if isPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// one connection keeps ":memory:" databases alive and serialises writers
		sqlDB.SetMaxOpenConns(1)
	}

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(sqlDB, dsn, isPostgres, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully", "postgres", isPostgres)
	return db, nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database still answers
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// runMigrations applies the embedded migrations for the selected dialect.
// Postgres migrates through its own short-lived handle: the pgx driver pins a
// connection until m.Close, and m.Close also closes the handle it was given.
// SQLite migrates on the caller's pool, since a ":memory:" database exists only
// inside that one connection.
func runMigrations(db *sql.DB, dsn string, isPostgres bool, logger *slog.Logger) error {
	dir := "migrations/sqlite"
	name := "sqlite3"
	var (
		driver migratedb.Driver
		err    error
	)
	if isPostgres {
		dir = "migrations/postgres"
		name = "pgx5"
		migrationDB, openErr := sql.Open("pgx", dsn)
		if openErr != nil {
			return fmt.Errorf("failed to open migration connection: %w", openErr)
		}
		driver, err = pgxmigrate.WithInstance(migrationDB, &pgxmigrate.Config{})
		if err != nil {
			migrationDB.Close()
		}
	} else {
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		closeDriver(driver, isPostgres, logger)
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		closeDriver(driver, isPostgres, logger)
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if isPostgres {
		defer func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				logger.Warn("failed to close migration handle", "source_error", srcErr, "database_error", dbErr)
			}
		}()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied successfully", "source", dir)
	return nil
}

// closeDriver releases a driver that never reached a migrate instance.
// The sqlite driver wraps the caller's pool and is left open.
func closeDriver(driver migratedb.Driver, isPostgres bool, logger *slog.Logger) {
	if !isPostgres {
		return
	}
	if err := driver.Close(); err != nil {
		logger.Warn("failed to close migration driver", "error", err)
	}
}

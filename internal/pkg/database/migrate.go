package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// NewMigrator builds a migrate instance over the embedded migrations for driver.
// For sqlite, dsn is the database file path.
func NewMigrator(driver, dsn string) (*migrate.Migrate, error) {
	var databaseURL string
	switch driver {
	case DriverPostgres:
		databaseURL = dsn
	case DriverSQLite:
		databaseURL = "sqlite://" + SQLiteDSN(dsn)
	default:
		return nil, fmt.Errorf("migrate: unsupported driver %q", driver)
	}

	src, err := iofs.New(migrationFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("migrate: open embedded source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrate: create instance: %w", err)
	}
	return m, nil
}

// RunMigration applies action ("up", "down", "drop", "version") for driver.
func RunMigration(action, driver, dsn string) error {
	m, err := NewMigrator(driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				slog.Info("no migration applied", "driver", driver)
				return nil
			}
			return err
		}
		slog.Info("migration version", "driver", driver, "version", version, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("migrate: unsupported action %q", action)
	}
}

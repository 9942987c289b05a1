package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrator(config models.DatabaseConfig) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	// the pgx migrate driver registers the pgx:// scheme
	url := "pgx" + strings.TrimPrefix(DSN(config), "postgres")

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration
func MigrateUp(config models.DatabaseConfig) error {
	m, err := newMigrator(config)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Database migrations applied",
		logger.Int("version", int(version)),
		logger.Bool("dirty", dirty))
	return nil
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(config models.DatabaseConfig, steps int) error {
	m, err := newMigrator(config)
	if err != nil {
		return err
	}
	defer m.Close()

	if steps <= 0 {
		steps = 1
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version
func MigrationVersion(config models.DatabaseConfig) (uint, bool, error) {
	m, err := newMigrator(config)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

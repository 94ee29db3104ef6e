package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// LatestVersion asks Migrate to apply every pending migration.
const LatestVersion = -1

// MigrationResult reports the schema version before and after a run.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// Migrate applies the embedded schema migrations.
//   - targetVersion < 0 migrates to the latest version.
//   - targetVersion == 0 rolls back every migration.
//   - targetVersion > 0 migrates up or down to that version.
func Migrate(db *sql.DB, targetVersion int, logger *zap.Logger) (MigrationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m, err := newMigrator(db)
	if err != nil {
		return MigrationResult{}, err
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return MigrationResult{From: current}, fmt.Errorf("database is dirty at version %d; fix manually or force the version", current)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}

	result := MigrationResult{From: current, To: current}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date", zap.Uint("version", current))
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("migrate to %d: %w", targetVersion, err)
	}

	if v, _, verr := m.Version(); verr == nil {
		result.To = v
	} else if errors.Is(verr, migrate.ErrNilVersion) {
		result.To = 0
	}
	result.Changed = true

	logger.Info("schema migrated", zap.Uint("from", result.From), zap.Uint("to", result.To))
	return result, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres migrate driver: %w", err)
	}

	src, err := migrationSource()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func migrationSource() (source.Driver, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("access migrations directory: %w", err)
	}
	driver, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	return driver, nil
}

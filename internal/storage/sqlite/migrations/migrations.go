package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/lybic/lybic-sdk-go/internal/log"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator applies the embedded journal schema migrations.
type Migrator struct {
	db     *sql.DB
	logger log.Logger
}

// NewMigrator returns a migrator for the journal database.
func NewMigrator(db *sql.DB, logger log.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = log.Noop
	}

	return &Migrator{db: db, logger: logger.WithValues(log.Kv{"svc": "storage.Migrator"})}, nil
}

// Up migrates the schema to the latest version.
func (m *Migrator) Up() error {
	return m.with(func(inst *migrate.Migrate) error {
		if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not apply migrations: %w", err)
		}
		return nil
	})
}

// Down removes the journal schema.
func (m *Migrator) Down() error {
	return m.with(func(inst *migrate.Migrate) error {
		if err := inst.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not revert migrations: %w", err)
		}
		return nil
	})
}

// Version returns the current schema version, zero when no migration has been applied.
func (m *Migrator) Version() (uint, error) {
	var version uint
	err := m.with(func(inst *migrate.Migrate) error {
		v, dirty, err := inst.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not get schema version: %w", err)
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", v)
		}
		version = v
		return nil
	})
	return version, err
}

func (m *Migrator) with(fn func(inst *migrate.Migrate) error) error {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Errorf("could not close migrations source: %s", err)
		}
	}()

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := fn(inst); err != nil {
		return err
	}

	v, _, _ := inst.Version()
	m.logger.Debugf("Journal schema at version %d", v)
	return nil
}

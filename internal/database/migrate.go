package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirtySchema means a previous migration failed halfway and needs a manual fix.
var ErrDirtySchema = errors.New("database schema is dirty")

type migrationRunner interface {
	Up() error
	Version() (uint, bool, error)
	Close() (error, error)
}

var newMigrate = func(sourceURL, databaseURL string) (migrationRunner, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Migrator applies the SQL files for startup_ideas and ai_generation_logs.
type Migrator struct {
	m migrationRunner
}

func NewMigrator(dsn, migrationsPath string) (*Migrator, error) {
	m, err := newMigrate(fmt.Sprintf("file://%s", migrationsPath), dsn)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up migrates to the latest version and returns it. It refuses to run on a
// dirty schema.
func (m *Migrator) Up() (uint, error) {
	if _, dirty, err := m.Version(); err != nil {
		return 0, err
	} else if dirty {
		return 0, ErrDirtySchema
	}

	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("running migrations: %w", err)
	}

	version, _, err := m.Version()
	return version, err
}

// Version reports the applied version. A fresh database is version 0, not an error.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator drives golang-migrate against the postgres schema.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New wraps an open database handle and a directory of up/down SQL pairs.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("prepare postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	mg.log.Info("applying pending migrations")
	if done, err := mg.run(mg.m.Up()); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	} else if done {
		return nil
	}
	mg.logVersion("migrations applied")
	return nil
}

// Down rolls every migration back.
func (mg *Migrator) Down() error {
	mg.log.Info("rolling back all migrations")
	if done, err := mg.run(mg.m.Down()); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	} else if done {
		return nil
	}
	mg.log.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations; a negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	mg.log.Info("stepping migrations", zap.Int("steps", n))
	if done, err := mg.run(mg.m.Steps(n)); err != nil {
		return fmt.Errorf("migrate %d steps: %w", n, err)
	} else if done {
		return nil
	}
	mg.logVersion("migration steps applied")
	return nil
}

// GoTo migrates up or down until the schema sits at version.
func (mg *Migrator) GoTo(version uint) error {
	mg.log.Info("migrating to version", zap.Uint("target", version))
	if done, err := mg.run(mg.m.Migrate(version)); err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	} else if done {
		return nil
	}
	mg.logVersion("target version reached")
	return nil
}

// run normalizes golang-migrate's no-change signal. The bool reports
// whether the schema was already where it should be.
func (mg *Migrator) run(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("schema already up to date")
		return true, nil
	}
	return false, err
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		mg.log.Warn("could not read schema version", zap.Error(err))
		return
	}
	mg.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}

// Version reports the current schema version; 0 means no migrations have
// been applied yet.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only for
// digging a dirty schema out by hand.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (mg *Migrator) Drop() error {
	mg.log.Warn("dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

var Restro *sqlx.DB

func ConnectAndMigrate(dsn string) error {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}
	Restro = db

	return migrateUp(db)
}

func ShutdownDatabase() error {
	if Restro == nil {
		return nil
	}
	return Restro.Close()
}

func migrateUp(db *sqlx.DB) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Tx runs fn inside a transaction, committing when fn returns nil and rolling back otherwise.
func Tx(fn func(tx *sqlx.Tx) error) error {
	tx, err := Restro.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start a transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollBackErr := tx.Rollback(); rollBackErr != nil {
			logrus.WithError(rollBackErr).Error("failed to rollback tx")
		}
		return err
	}
	return tx.Commit()
}

package migration

import (
	"database/sql"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

const migrationTable = "schema_migrations"

// Run applies every pending migration under internal/migration.
func Run(db *sql.DB, log *logrus.Logger) error {
	wd, err := os.Getwd()
	if err != nil {
		log.WithError(err).Error("Error getting working directory")
		return err
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}
	migrate.SetTable(migrationTable)

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		log.WithError(err).Error("Error executing migration")
		return err
	}

	log.WithField("applied", n).Info("Applied migrations")
	return nil
}

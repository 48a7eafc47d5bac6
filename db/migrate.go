package db

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/stoich/errors"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationsDir = "sqlite/migrations"

// Migrate applies every embedded migration not yet recorded in
// schema_migrations and returns how many it applied.
// If logger is provided, logs migration progress; otherwise operates silently.
func Migrate(db *sql.DB, logger *zap.SugaredLogger) (int, error) {
	files, err := migrationFiles()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		version := strings.SplitN(filename, "_", 2)[0]

		done, err := isApplied(db, version)
		if err != nil {
			return applied, errors.Wrapf(err, "check %s", filename)
		}
		if done {
			continue
		}

		if err := applyMigration(db, filename, version); err != nil {
			return applied, err
		}
		applied++
		if logger != nil {
			logger.Debugw("Applied ledger migration", "migration", filename)
		}
	}

	// Same level as the run summary: a schema change is worth seeing once.
	if logger != nil && applied > 0 {
		logger.Infow("Ledger schema updated",
			"applied", applied,
			"total", len(files),
		)
	}
	return applied, nil
}

// migrationFiles lists the embedded .sql files in version order;
// 000_create_schema_migrations.sql sorts first.
func migrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir(migrationsDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// isApplied reports whether version is recorded. Before 000 has run the
// schema_migrations table is missing, which counts as not applied.
func isApplied(db *sql.DB, version string) (bool, error) {
	var tables int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'").Scan(&tables); err != nil {
		return false, err
	}
	if tables == 0 {
		if version != "000" {
			return false, errors.Newf("schema_migrations table missing before migration %s", version)
		}
		return false, nil
	}

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&exists)
	return exists, err
}

// applyMigration runs one file and records it in the same transaction.
func applyMigration(db *sql.DB, filename, version string) error {
	sqlBytes, err := migrations.ReadFile(path.Join(migrationsDir, filename))
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", filename)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		return errors.Wrapf(err, "execute %s", filename)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return errors.Wrapf(err, "record %s", filename)
	}
	return errors.Wrapf(tx.Commit(), "commit %s", filename)
}

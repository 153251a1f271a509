package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
)

//go:embed sqlite/migrations/*.sql
var migrationFS embed.FS

// Migration is one schema step. Version is the file name up to the first
// underscore; versions sort lexically.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Migrations lists the embedded schema steps in the order they apply.
func Migrations() ([]Migration, error) {
	return loadMigrations(migrationFS, "sqlite/migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	names, err := fs.Glob(fsys, dir+"/*.sql")
	if err != nil {
		return nil, errors.Wrap(err, "list migrations")
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		base := name[strings.LastIndex(name, "/")+1:]
		version, _, _ := strings.Cut(base, "_")
		out = append(out, Migration{Version: version, Name: base, SQL: string(body)})
	}
	return out, nil
}

// appliedVersions returns the recorded versions. A store without the
// schema_migrations table has none.
func appliedVersions(ctx context.Context, conn *sql.DB) (map[string]bool, error) {
	var n int
	err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'").Scan(&n)
	if err != nil {
		return nil, errors.Wrap(err, "inspect schema")
	}
	applied := make(map[string]bool)
	if n == 0 {
		return applied, nil
	}

	rows, err := conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, errors.Wrap(err, "read schema_migrations")
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "read schema_migrations")
		}
		applied[v] = true
	}
	return applied, errors.Wrap(rows.Err(), "read schema_migrations")
}

// SchemaVersion returns the highest applied migration version, or "" for a
// store that was never migrated.
func SchemaVersion(ctx context.Context, conn *sql.DB) (string, error) {
	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return "", err
	}
	latest := ""
	for v := range applied {
		if v > latest {
			latest = v
		}
	}
	return latest, nil
}

// Migrate applies every pending migration, each in its own transaction.
func Migrate(conn *sql.DB, log *zap.SugaredLogger) error {
	return MigrateContext(context.Background(), conn, log)
}

// MigrateContext is Migrate with a caller-supplied context.
func MigrateContext(ctx context.Context, conn *sql.DB, log *zap.SugaredLogger) error {
	log = logger.OrNop(log)

	steps, err := Migrations()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	count := 0
	for _, m := range steps {
		if applied[m.Version] {
			continue
		}
		if err := apply(ctx, conn, m); err != nil {
			return err
		}
		log.Infow("Applied migration", "migration", m.Name, "version", m.Version)
		count++
	}

	if count > 0 {
		log.Infow("Fact store schema updated", "applied", count, "migrations", len(steps))
	}
	return nil
}

func apply(ctx context.Context, conn *sql.DB, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin %s", m.Name)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return errors.Wrapf(err, "execute %s", m.Name)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
		return errors.Wrapf(err, "record %s", m.Name)
	}
	return errors.Wrapf(tx.Commit(), "commit %s", m.Name)
}

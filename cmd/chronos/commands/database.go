package commands

import (
	"database/sql"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/db"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
)

// openDatabase opens and migrates the fact store at dbPath, or at the
// configured database.path when dbPath is empty.
func openDatabase(cfg *am.Config, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.ComponentLogger("db"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open fact store at %s", dbPath)
	}
	return database, nil
}

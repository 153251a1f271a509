package db

import (
	"database/sql"
	"net/url"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
)

// SQLiteBusyTimeoutMS is how long a connection waits on a locked database.
const SQLiteBusyTimeoutMS = 5000

// DSN returns the go-sqlite3 data source name for a fact store at path.
// The pragmas are connection parameters so every pooled connection gets them.
func DSN(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", strconv.Itoa(SQLiteBusyTimeoutMS))
	return "file:" + path + "?" + q.Encode()
}

// Open opens the SQLite fact store at path, creating the file if needed.
// A nil logger operates silently.
func Open(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	log = logger.OrNop(log)

	conn, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", path)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "open database %s", path)
	}

	log.Debugw("Fact store opened", logger.FieldPath, path)
	return conn, nil
}

// OpenWithMigrations opens the fact store at path and brings its schema up
// to date.
func OpenWithMigrations(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	conn, err := Open(path, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn, log); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "migrate %s", path)
	}
	return conn, nil
}

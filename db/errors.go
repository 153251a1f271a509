package db

import (
	"strings"

	"github.com/teranos/chronos/errors"
)

// ErrDatabaseClosed marks store calls made after Close, which happens when a
// watch loop is interrupted mid-snapshot.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed matches ErrDatabaseClosed as well as the unwrapped
// "sql: database is closed" that database/sql returns.
func IsDatabaseClosed(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrDatabaseClosed):
		return true
	default:
		return strings.HasSuffix(err.Error(), ErrDatabaseClosed.Error())
	}
}

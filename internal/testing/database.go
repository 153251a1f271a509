// Package testing holds test helpers shared across chronos packages.
package testing

import (
	"database/sql"
	"testing"

	"github.com/teranos/chronos/db"
)

// CreateTestDB returns a migrated in-memory fact store, closed on cleanup.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", db.DSN(":memory:"))
	if err != nil {
		t.Fatalf("open test fact store: %v", err)
	}
	// Each pooled connection to :memory: would be its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, nil); err != nil {
		t.Fatalf("migrate test fact store: %v", err)
	}
	return conn
}

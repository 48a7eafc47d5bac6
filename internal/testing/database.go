// Package testing holds helpers shared by stoich tests.
package testing

import (
	"database/sql"
	"testing"

	"github.com/teranos/stoich/db"
)

// CreateTestDB creates an in-memory ledger database with every migration
// applied. Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Each new connection to :memory: would see an empty database
	conn.SetMaxOpenConns(1)

	if _, err := db.Migrate(conn, nil); err != nil {
		conn.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

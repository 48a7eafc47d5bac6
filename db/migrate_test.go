package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenWithMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"schema_migrations", "runs"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", name)
	}

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	pending, err := Migrate(db, nil)
	require.NoError(t, err)
	assert.Zero(t, pending)
	db.Close()

	db, err = OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestMigrateLogsAppliedCount(t *testing.T) {
	conn, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer conn.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core).Sugar()

	applied, err := Migrate(conn, log)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	updated := logs.FilterMessage("Ledger schema updated").All()
	require.Len(t, updated, 1)
	assert.EqualValues(t, 2, updated[0].ContextMap()["applied"])
	assert.EqualValues(t, 2, updated[0].ContextMap()["total"])

	// nothing pending: no info line
	applied, err = Migrate(conn, log)
	require.NoError(t, err)
	assert.Zero(t, applied)
	assert.Len(t, logs.FilterMessage("Ledger schema updated").All(), 1)
}

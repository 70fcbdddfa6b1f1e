package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"events", "oauth_tokens"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var idx string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_events_start'`).Scan(&idx))
}

func TestMigrate_AddsLinkColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT name FROM pragma_table_info('events')`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	assert.Contains(t, cols, "html_link")
	assert.Contains(t, cols, "color_id")
}

func TestMigrate_RejectsInvertedEvent(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO events (id, summary, start_at, end_at, created_at, updated_at)
		VALUES ('e1', 'Backwards', '2024-06-10T10:00:00Z', '2024-06-10T09:00:00Z', '', '')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "donna.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO oauth_tokens (provider, access_token, updated_at) VALUES ('google', 'x', 'now')`)
	assert.NoError(t, err)
}

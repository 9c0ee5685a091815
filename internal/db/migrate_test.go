package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"content_resources", "content_resource_resources",
		"products", "content_resource_products", "resource_progress",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_content_resources_type",
		"idx_content_resources_slug",
		"idx_crr_sibling_position",
		"idx_crr_child",
		"idx_crp_resource",
		"idx_resource_progress_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsInvalidFieldsJSON(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO content_resources (id, type, fields, created_at, updated_at)
		VALUES ('r1', 'lesson', 'not json', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsSelfLink(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO content_resources (id, type, fields, created_at, updated_at)
		VALUES ('r1', 'lesson', '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO content_resource_resources (resource_of_id, resource_id, position, created_at)
		VALUES ('r1', 'r1', 0, '2025-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsDuplicateSiblingPosition(t *testing.T) {
	db := openTestDB(t)

	for _, id := range []string{"p", "a", "b"} {
		_, err := db.Exec(`INSERT INTO content_resources (id, type, fields, created_at, updated_at)
			VALUES (?, 'lesson', '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id)
		require.NoError(t, err)
	}

	insert := `INSERT INTO content_resource_resources (resource_of_id, resource_id, position, created_at)
		VALUES (?, ?, 1, '2025-01-01T00:00:00Z')`
	_, err := db.Exec(insert, "p", "a")
	require.NoError(t, err)
	_, err = db.Exec(insert, "p", "b")
	assert.Error(t, err)

	// The same position under another parent is fine.
	_, err = db.Exec(insert, "a", "b")
	assert.NoError(t, err)
}

func TestOpenDB_FileBacked(t *testing.T) {
	path := t.TempDir() + "/nested/coursenav.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

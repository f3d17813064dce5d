package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("creates full schema on a fresh database", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, Migrate(db, nil))

		tables := []string{
			"schema_migrations",
			"domains",
			"ontologies",
			"ontology_versions",
			"ontology_entities",
			"concepts",
			"concept_versions",
			"approval_workflows",
		}
		for _, table := range tables {
			var count int
			err := db.QueryRow(
				"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
			).Scan(&count)
			require.NoError(t, err)
			assert.Equal(t, 1, count, "table %s should exist after migrations", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, Migrate(db, nil))
		require.NoError(t, Migrate(db, nil))

		var applied int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
		require.NoError(t, err)
		assert.Equal(t, 2, applied, "each migration recorded exactly once")
	})
}

func TestOpenWithMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	var exists int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='ontology_versions'").Scan(&exists)
	require.NoError(t, err)
	assert.Equal(t, 1, exists)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "anything"))

	notFound := TranslateError(sql.ErrNoRows, "ontology eth:core")
	assert.Contains(t, notFound.Error(), "eth:core")

	storage := TranslateError(assert.AnError, "insert version")
	assert.Contains(t, storage.Error(), "insert version")
}

func TestIsConstraintViolation(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db, nil))

	_, err = db.Exec("INSERT INTO domains (name) VALUES ('eth')")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO domains (name) VALUES ('eth')")
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))
	assert.False(t, IsConstraintViolation(nil))
}

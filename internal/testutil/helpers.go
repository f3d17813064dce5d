// Package testutil provides shared database helpers for tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/ontovault/ontovault/db"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// Uses real migrations to ensure test schema matches production schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	_, err = testDB.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	err = db.Migrate(testDB, nil)
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() { testDB.Close() })
	return testDB
}

// SetupEmptyDB creates an in-memory SQLite database WITHOUT the schema.
// Used for testing error handling when tables are missing.
func SetupEmptyDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { testDB.Close() })
	return testDB
}

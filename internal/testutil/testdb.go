package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fluttering/flagctl/internal/db"
)

// NewTestDB opens a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated database file under t.TempDir and returns
// its path so tests can reopen it.
func NewFileTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flagctl.db")
	return openTestDB(t, path), path
}

// ReopenTestDB opens another handle on a database created by NewFileTestDB.
func ReopenTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	return openTestDB(t, path)
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

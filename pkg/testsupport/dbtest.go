package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens an in-memory SQLite database for storage tests.
// Callers must pin the pool to a single connection or the database vanishes
// between statements.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", ":memory:")
}

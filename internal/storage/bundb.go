package storage

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// ErrDriverUnsupported indicates the configured driver has no bun dialect.
var ErrDriverUnsupported = errors.New("storage: unsupported driver")

// NewDB wraps an opened *sql.DB in a bun.DB with the dialect matching the
// configured driver name.
func NewDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "postgresql", "pg":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, ErrDriverUnsupported
	}
}

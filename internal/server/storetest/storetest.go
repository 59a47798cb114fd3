// Package storetest opens throwaway SQLite databases with the schema
// applied, for tests of the repositories and services.
package storetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// OpenSQLite returns a migrated database in t's temp dir. It is closed
// when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "eventdesk.db")

	db, err := dbx.Open(ctx, dbx.SQLite, path, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect(dbx.SQLite.Goose))
	require.NoError(t, goose.UpContext(ctx, db, migrations.Dir(dbx.SQLite)))

	return db
}

// Exec runs a statement for fixture setup.
func Exec(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// Count returns the single integer produced by query.
func Count(t testing.TB, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DefaultConnectTimeout bounds connection acquisition when none is configured.
const DefaultConnectTimeout = 10 * time.Second

// Open connects to the store described by d and dsn and verifies the
// connection within timeout. For SQLite the same timeout becomes the
// busy_timeout, so a database locked by a long writer fails instead of
// blocking forever.
func Open(ctx context.Context, d Dialect, dsn string, timeout time.Duration) (*sql.DB, error) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	if d.Name == SQLite.Name {
		if path, ok := sqlitePath(dsn); ok {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("db dir error: %w", err)
			}
		}
		dsn = sqliteDSN(dsn, timeout)
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// sqlitePath extracts the database file from a SQLite DSN. In-memory
// databases report false.
func sqlitePath(dsn string) (string, bool) {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		if strings.Contains(path[i:], "mode=memory") {
			return "", false
		}
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return "", false
	}
	return path, true
}

// sqliteDSN adds the pragmas the store relies on unless the DSN sets them.
func sqliteDSN(dsn string, busy time.Duration) string {
	if !strings.Contains(dsn, "busy_timeout") {
		dsn = appendQuery(dsn, fmt.Sprintf("_pragma=busy_timeout(%d)", busy.Milliseconds()))
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn = appendQuery(dsn, "_pragma=foreign_keys(1)")
	}
	return dsn
}

func appendQuery(dsn, kv string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + kv
	}
	return dsn + "?" + kv
}

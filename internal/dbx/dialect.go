package dbx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Dialect describes the SQL differences between the supported stores.
// Repositories write queries with '?' placeholders and call Rebind.
type Dialect struct {
	// Name is the value accepted in configuration ("sqlite", "postgres").
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect used for migrations.
	Goose string
	// Like is the case-insensitive pattern-match operator.
	Like string

	numbered bool
}

var (
	SQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite",
		Goose:  "sqlite3",
		Like:   "LIKE",
	}
	Postgres = Dialect{
		Name:     "postgres",
		Driver:   "pgx",
		Goose:    "postgres",
		Like:     "ILIKE",
		numbered: true,
	}
)

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// Rebind converts '?' placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint.
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	// extended result codes are not always enabled on the connection
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Package repomanager provides a RepositoryManager for the SQL dialects in
// dbx, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/migrations"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/admins"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/loginhistory"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories for one dialect and exposes a
// schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	log     logging.Logger
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Admins returns an admins.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Admins(db dbx.DBTX) admins.Repository {
	return admins.NewSQLRepository(db, m.dialect)
}

// Events returns an events.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, m.dialect)
}

// LoginHistory returns a loginhistory.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) LoginHistory(db dbx.DBTX) loginhistory.Repository {
	return loginhistory.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
// Every table is created if absent, so running it on each start is safe.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, log: m.log})
	if err := goose.SetDialect(m.dialect.Goose); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, migrations.Dir(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for d. Migration
// progress is logged to log.
func NewSQLRepositoryManager(d dbx.Dialect, log logging.Logger) (RepositoryManager, error) {
	if d.Driver == "" {
		return nil, fmt.Errorf("repomanager: empty dialect")
	}
	if log == nil {
		log = logging.Nop()
	}
	return &SQLRepositoryManager{dialect: d, log: log.With("component", "migrations")}, nil
}

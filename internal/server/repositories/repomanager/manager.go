package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/admins"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/loginhistory"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Admins(db dbx.DBTX) admins.Repository
	Events(db dbx.DBTX) events.Repository
	LoginHistory(db dbx.DBTX) loginhistory.Repository
}

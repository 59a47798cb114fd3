// Package loginhistory persists the append-only login_history table.
package loginhistory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

type Repository interface {
	// Create appends one entry stamped with at.
	Create(ctx context.Context, subjectID int64, role models.Role, at time.Time) (*models.LoginHistoryEntry, error)
	// List returns every entry, most recent first, with the subject's
	// current username. Deleted subjects have a NULL DisplayName.
	List(ctx context.Context) ([]models.LoginHistoryEntry, error)
}

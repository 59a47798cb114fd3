package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
)

// AuditService appends to and reads the login history.
type AuditService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewAuditService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AuditService {
	return &AuditService{
		db:          db,
		repomanager: m,
		log:         log.With("component", "audit"),
		now:         time.Now,
	}
}

// RecordLogin appends an entry stamped with the current time.
func (s *AuditService) RecordLogin(ctx context.Context, subjectID int64, role models.Role) error {
	if !role.Valid() {
		return common.ErrInvalidRole
	}
	entry, err := s.repomanager.LoginHistory(s.db).Create(ctx, subjectID, role, s.now())
	if err != nil {
		return err
	}
	s.log.Debug(ctx, "login recorded", "entry_id", entry.ID, "subject_id", subjectID, "role", string(role))
	return nil
}

// GetLoginHistory returns the log, most recent first. Admins only.
func (s *AuditService) GetLoginHistory(ctx context.Context, p models.Principal) ([]models.LoginHistoryEntry, error) {
	if !p.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.LoginHistory(s.db).List(ctx)
}

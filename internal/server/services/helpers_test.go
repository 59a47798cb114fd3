package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/auth"
	"github.com/dmitrijs2005/eventdesk/internal/server/config"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/admins"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/loginhistory"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/users"
	"github.com/dmitrijs2005/eventdesk/internal/server/storetest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// env is a full service stack over a migrated SQLite database.
type env struct {
	db          *sql.DB
	credentials *CredentialService
	events      *EventService
	audit       *AuditService
	profiles    *ProfileService
	sessions    *SessionService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := storetest.OpenSQLite(t)
	rm, err := repomanager.NewSQLRepositoryManager(dbx.SQLite, nil)
	require.NoError(t, err)

	log := logging.Nop()
	cfg := &config.Config{SecretKey: "test-secret", SessionValidityDuration: time.Hour}

	creds := NewCredentialService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), log)
	audit := NewAuditService(db, rm, log)

	return &env{
		db:          db,
		credentials: creds,
		events:      NewEventService(db, rm, log),
		audit:       audit,
		profiles:    NewProfileService(db, rm, creds, log),
		sessions:    NewSessionService(creds, audit, cfg, log),
	}
}

func (e *env) register(t *testing.T, username string) models.Principal {
	t.Helper()
	id, err := e.credentials.RegisterUser(context.Background(), username, "pw-"+username, "555", "Name "+username)
	require.NoError(t, err)
	return models.Principal{ID: id, Role: models.RoleUser}
}

func (e *env) admin(t *testing.T, username string) models.Principal {
	t.Helper()
	id, err := e.credentials.CreateAdmin(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return models.Principal{ID: id, Role: models.RoleAdmin}
}

// fakeRepoManager hands out whichever fakes a test sets; the rest are nil.
type fakeRepoManager struct {
	u users.Repository
	a admins.Repository
	e events.Repository
	l loginhistory.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) Admins(dbx.DBTX) admins.Repository             { return m.a }
func (m *fakeRepoManager) Events(dbx.DBTX) events.Repository             { return m.e }
func (m *fakeRepoManager) LoginHistory(dbx.DBTX) loginhistory.Repository { return m.l }

// Fakes embed the interface so only the methods a test needs are written.
type fakeUsersRepo struct {
	users.Repository
	getErr   error
	themeErr error
}

func (f *fakeUsersRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, f.getErr
}

func (f *fakeUsersRepo) GetTheme(context.Context, int64) (models.Theme, error) {
	return "", f.themeErr
}

type fakeAdminsRepo struct {
	admins.Repository
	getErr error
}

func (f *fakeAdminsRepo) GetByUsername(context.Context, string) (*models.Admin, error) {
	return nil, f.getErr
}

type fakeHistoryRepo struct {
	loginhistory.Repository
	createErr error
	created   []models.Role
}

func (f *fakeHistoryRepo) Create(_ context.Context, subjectID int64, role models.Role, at time.Time) (*models.LoginHistoryEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, role)
	return &models.LoginHistoryEntry{ID: 1, SubjectID: subjectID, Role: role, LoginTime: at}, nil
}

// countingHasher records Burn calls around a real bcrypt hasher.
type countingHasher struct {
	*auth.BcryptHasher
	burns int
}

func (h *countingHasher) Burn(plain string) {
	h.burns++
	h.BcryptHasher.Burn(plain)
}

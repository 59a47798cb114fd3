package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/auth"
	"github.com/dmitrijs2005/eventdesk/internal/server/config"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

// Session is the result of a successful login.
type Session struct {
	models.Principal
	Token     string
	ExpiresAt time.Time
}

// SessionService is the access gate: it turns credentials into a signed
// session and sessions back into principals.
type SessionService struct {
	credentials      *CredentialService
	audit            *AuditService
	jwtSecret        []byte
	validityDuration time.Duration
	log              logging.Logger
	now              func() time.Time
}

func NewSessionService(credentials *CredentialService, audit *AuditService, cfg *config.Config, log logging.Logger) *SessionService {
	return &SessionService{
		credentials:      credentials,
		audit:            audit,
		jwtSecret:        []byte(cfg.SecretKey),
		validityDuration: cfg.SessionValidityDuration,
		log:              log.With("component", "sessions"),
		now:              time.Now,
	}
}

// Login validates the credentials for role, records the login and issues
// a session token. Bad credentials yield common.ErrorUnauthorized.
func (s *SessionService) Login(ctx context.Context, role models.Role, username, password string) (*Session, error) {
	var (
		id  int64
		err error
	)
	switch role {
	case models.RoleUser:
		id, err = s.credentials.ValidateUser(ctx, username, password)
	case models.RoleAdmin:
		id, err = s.credentials.ValidateAdmin(ctx, username, password)
	default:
		return nil, common.ErrInvalidRole
	}
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.log.Warn(ctx, "login failed", "role", string(role))
		}
		return nil, err
	}

	p := models.Principal{ID: id, Role: role}
	if err := s.audit.RecordLogin(ctx, id, role); err != nil {
		return nil, err
	}

	token, expires, err := auth.GenerateToken(p, s.jwtSecret, s.validityDuration, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "login", "principal_id", id, "role", string(role))
	return &Session{Principal: p, Token: token, ExpiresAt: expires}, nil
}

// Authenticate returns the principal carried by token.
func (s *SessionService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

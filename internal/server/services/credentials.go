// Package services contains the business logic over the repositories:
// credential checks, ownership enforcement on events and profiles, the
// login audit log and session tokens. Repositories trust their callers;
// these services are the callers that check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/auth"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// CredentialService owns password hashing and verification for users and
// admins.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	validator   *validator.Validate
	log         logging.Logger
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, log logging.Logger) *CredentialService {
	v := validator.New()
	// max counts runes, bcrypt counts bytes
	_ = v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})

	return &CredentialService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		validator:   v,
		log:         log.With("component", "credentials"),
	}
}

type registration struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,pwbytes"`
	Phone    string `validate:"max=32"`
	Name     string `validate:"max=200"`
}

type adminSeed struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,pwbytes"`
}

// RegisterUser creates a user with the light theme. The UNIQUE constraint
// decides duplicates; there is no pre-check.
func (s *CredentialService) RegisterUser(ctx context.Context, username, password, phone, name string) (int64, error) {
	if err := s.validator.Struct(registration{Username: username, Password: password, Phone: phone, Name: name}); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Phone:        phone,
		Name:         name,
		Theme:        models.DefaultTheme,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return 0, err
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user.ID, nil
}

// ValidateUser returns the id of the user if password matches. Unknown
// usernames and wrong passwords both yield common.ErrorUnauthorized.
func (s *CredentialService) ValidateUser(ctx context.Context, username, password string) (int64, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Burn(password)
			return 0, common.ErrorUnauthorized
		}
		return 0, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return 0, common.ErrorUnauthorized
	}
	return user.ID, nil
}

// ValidateAdmin is ValidateUser for the admin table.
func (s *CredentialService) ValidateAdmin(ctx context.Context, username, password string) (int64, error) {
	admin, err := s.repomanager.Admins(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Burn(password)
			return 0, common.ErrorUnauthorized
		}
		return 0, err
	}

	if !s.hasher.Verify(admin.PasswordHash, password) {
		return 0, common.ErrorUnauthorized
	}
	return admin.ID, nil
}

// ResetUserPassword stores an already hashed password.
func (s *CredentialService) ResetUserPassword(ctx context.Context, userID int64, newHash string) error {
	return s.repomanager.Users(s.db).UpdatePassword(ctx, userID, newHash)
}

// UpdateAdminPassword stores an already hashed password.
func (s *CredentialService) UpdateAdminPassword(ctx context.Context, adminID int64, newHash string) error {
	return s.repomanager.Admins(s.db).UpdatePassword(ctx, adminID, newHash)
}

func (s *CredentialService) GetAdminPasswordHash(ctx context.Context, adminID int64) (string, error) {
	return s.repomanager.Admins(s.db).GetPasswordHash(ctx, adminID)
}

// ResetUserPasswordPlain hashes newPassword and stores it.
func (s *CredentialService) ResetUserPasswordPlain(ctx context.Context, userID int64, newPassword string) error {
	hash, err := s.hashNew(newPassword)
	if err != nil {
		return err
	}
	if err := s.ResetUserPassword(ctx, userID, hash); err != nil {
		return err
	}
	s.log.Info(ctx, "user password reset", "user_id", userID)
	return nil
}

// ChangeUserPassword is the self-service change: the user's current
// password is verified before newPassword is stored. Admins may act on any
// user but still need the current password.
func (s *CredentialService) ChangeUserPassword(ctx context.Context, p models.Principal, userID int64, current, newPassword string) error {
	if !p.CanAccessOwner(userID) {
		return common.ErrorForbidden
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, current) {
		s.log.Warn(ctx, "user password change rejected", "user_id", userID)
		return common.ErrorUnauthorized
	}

	hash, err := s.hashNew(newPassword)
	if err != nil {
		return err
	}
	if err := s.ResetUserPassword(ctx, userID, hash); err != nil {
		return err
	}
	s.log.Info(ctx, "user password changed", "user_id", userID)
	return nil
}

// ChangeAdminPassword replaces the admin's password after verifying
// current. A wrong current password yields common.ErrorUnauthorized.
func (s *CredentialService) ChangeAdminPassword(ctx context.Context, adminID int64, current, newPassword string) error {
	stored, err := s.GetAdminPasswordHash(ctx, adminID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(stored, current) {
		s.log.Warn(ctx, "admin password change rejected", "admin_id", adminID)
		return common.ErrorUnauthorized
	}

	hash, err := s.hashNew(newPassword)
	if err != nil {
		return err
	}
	if err := s.UpdateAdminPassword(ctx, adminID, hash); err != nil {
		return err
	}
	s.log.Info(ctx, "admin password changed", "admin_id", adminID)
	return nil
}

// CreateAdmin seeds an admin. An existing username yields
// common.ErrDuplicateUsername.
func (s *CredentialService) CreateAdmin(ctx context.Context, username, password string) (int64, error) {
	if err := s.validator.Struct(adminSeed{Username: username, Password: password}); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	admin, err := s.repomanager.Admins(s.db).Create(ctx, &models.Admin{
		Username:     username,
		PasswordHash: hash,
		Theme:        models.DefaultTheme,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return 0, err
		}
		return 0, fmt.Errorf("error creating admin: %w", err)
	}

	s.log.Info(ctx, "admin created", "admin_id", admin.ID)
	return admin.ID, nil
}

// EnsureAdmin creates the admin unless one with that username exists. An
// existing admin keeps its password.
func (s *CredentialService) EnsureAdmin(ctx context.Context, username, password string) (id int64, created bool, err error) {
	existing, err := s.repomanager.Admins(s.db).GetByUsername(ctx, username)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return 0, false, err
	}

	id, err = s.CreateAdmin(ctx, username, password)
	if errors.Is(err, common.ErrDuplicateUsername) {
		// created concurrently
		existing, err = s.repomanager.Admins(s.db).GetByUsername(ctx, username)
		if err != nil {
			return 0, false, err
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *CredentialService) hashNew(password string) (string, error) {
	if err := s.validator.Var(password, "required,pwbytes"); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

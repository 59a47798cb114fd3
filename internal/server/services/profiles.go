package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
)

// ProfileService covers per-principal settings and the admin's user
// management.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	credentials *CredentialService
	log         logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, credentials *CredentialService, log logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		credentials: credentials,
		log:         log.With("component", "profiles"),
	}
}

func (s *ProfileService) GetUserProfile(ctx context.Context, p models.Principal, userID int64) (*models.UserProfile, error) {
	if !p.CanAccessOwner(userID) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).GetProfile(ctx, userID)
}

// UpdateUserProfile sets the theme and applies image.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, p models.Principal, userID int64, theme models.Theme, image models.ImageUpdate) error {
	if !p.CanAccessOwner(userID) {
		return common.ErrorForbidden
	}
	if !theme.Valid() {
		return common.ErrInvalidTheme
	}
	if err := s.repomanager.Users(s.db).UpdateProfile(ctx, userID, theme, image); err != nil {
		return err
	}
	s.log.Info(ctx, "user profile updated", "user_id", userID, "theme", string(theme), "image", image.String())
	return nil
}

// GetAdminProfile is available to the admin itself only.
func (s *ProfileService) GetAdminProfile(ctx context.Context, p models.Principal, adminID int64) (*models.AdminProfile, error) {
	if !isSelfAdmin(p, adminID) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Admins(s.db).GetProfile(ctx, adminID)
}

func (s *ProfileService) UpdateAdminProfile(ctx context.Context, p models.Principal, adminID int64, image models.ImageUpdate, theme models.Theme) error {
	if !isSelfAdmin(p, adminID) {
		return common.ErrorForbidden
	}
	if !theme.Valid() {
		return common.ErrInvalidTheme
	}
	if err := s.repomanager.Admins(s.db).UpdateProfile(ctx, adminID, image, theme); err != nil {
		return err
	}
	s.log.Info(ctx, "admin profile updated", "admin_id", adminID, "theme", string(theme), "image", image.String())
	return nil
}

// GetUserTheme returns the stored theme, or the default for unknown users.
func (s *ProfileService) GetUserTheme(ctx context.Context, userID int64) (models.Theme, error) {
	return themeOrDefault(s.repomanager.Users(s.db).GetTheme(ctx, userID))
}

// GetAdminTheme returns the stored theme, or the default for unknown admins.
func (s *ProfileService) GetAdminTheme(ctx context.Context, adminID int64) (models.Theme, error) {
	return themeOrDefault(s.repomanager.Admins(s.db).GetTheme(ctx, adminID))
}

// ThemeFor picks the theme lookup by the principal's role.
func (s *ProfileService) ThemeFor(ctx context.Context, p models.Principal) (models.Theme, error) {
	switch p.Role {
	case models.RoleAdmin:
		return s.GetAdminTheme(ctx, p.ID)
	case models.RoleUser:
		return s.GetUserTheme(ctx, p.ID)
	}
	return models.DefaultTheme, nil
}

func themeOrDefault(theme models.Theme, err error) (models.Theme, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return models.DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	if !theme.Valid() {
		return models.DefaultTheme, nil
	}
	return theme, nil
}

// GetUser returns the user record. Users may read only themselves.
func (s *ProfileService) GetUser(ctx context.Context, p models.Principal, userID int64) (*models.User, error) {
	if !p.CanAccessOwner(userID) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// ListUsers returns all users in id order. Admins only.
func (s *ProfileService) ListUsers(ctx context.Context, p models.Principal) ([]models.User, error) {
	if !p.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).List(ctx)
}

// DeleteUser removes the user's events and then the user in one
// transaction. Admins only.
func (s *ProfileService) DeleteUser(ctx context.Context, p models.Principal, userID int64) error {
	if !p.IsAdmin() {
		return common.ErrorForbidden
	}

	var removed int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		removed, err = s.repomanager.Events(tx).DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "user_id", userID, "events_removed", removed, "admin_id", p.ID)
	return nil
}

// ResetUserPassword sets a new password for userID. Admins only.
func (s *ProfileService) ResetUserPassword(ctx context.Context, p models.Principal, userID int64, newPassword string) error {
	if !p.IsAdmin() {
		return common.ErrorForbidden
	}
	return s.credentials.ResetUserPasswordPlain(ctx, userID, newPassword)
}

func isSelfAdmin(p models.Principal, adminID int64) bool {
	return p.IsAdmin() && p.ID == adminID
}

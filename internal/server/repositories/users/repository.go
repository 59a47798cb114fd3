// Package users persists the users table. It performs no authorization:
// callers must have checked the principal before calling.
package users

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

type Repository interface {
	// Create inserts user and sets its ID. An existing username yields
	// common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	// UpdateProfile always writes theme and writes the image only when
	// image is not a keep.
	UpdateProfile(ctx context.Context, id int64, theme models.Theme, image models.ImageUpdate) error
	GetTheme(ctx context.Context, id int64) (models.Theme, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

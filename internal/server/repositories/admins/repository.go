// Package admins persists the admin table. Admins are seeded out of band;
// there is no self-registration.
package admins

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetProfile(ctx context.Context, id int64) (*models.AdminProfile, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, id int64, image models.ImageUpdate, theme models.Theme) error
	GetTheme(ctx context.Context, id int64) (models.Theme, error)
}

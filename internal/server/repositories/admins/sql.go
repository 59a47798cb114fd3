package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if admin.Theme == "" {
		admin.Theme = models.DefaultTheme
	}

	query :=
		`INSERT INTO admin (username, password, image, theme)
		 VALUES (?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, r.d.Rebind(query),
		admin.Username, admin.PasswordHash, admin.Image, string(admin.Theme)).Scan(&admin.ID)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getOne(ctx, `SELECT id, username, password, image, theme FROM admin WHERE id = ?`, id)
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getOne(ctx, `SELECT id, username, password, image, theme FROM admin WHERE username = ?`, username)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.Admin, error) {
	var (
		a     models.Admin
		theme string
	)
	err := r.db.QueryRowContext(ctx, r.d.Rebind(query), arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Image, &theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.Theme = models.Theme(theme)
	return &a, nil
}

// GetProfile includes the password hash so a password change can verify
// the current password first.
func (r *SQLRepository) GetProfile(ctx context.Context, id int64) (*models.AdminProfile, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.AdminProfile{
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Image:        a.Image,
		Theme:        a.Theme,
	}, nil
}

func (r *SQLRepository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT password FROM admin WHERE id = ?`), id).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return hash, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `UPDATE admin SET password = ? WHERE id = ?`, passwordHash, id)
}

func (r *SQLRepository) UpdateProfile(ctx context.Context, id int64, image models.ImageUpdate, theme models.Theme) error {
	if image.Keep() {
		return r.exec(ctx, `UPDATE admin SET theme = ? WHERE id = ?`, string(theme), id)
	}
	return r.exec(ctx, `UPDATE admin SET image = ?, theme = ? WHERE id = ?`, image.Value(), string(theme), id)
}

func (r *SQLRepository) GetTheme(ctx context.Context, id int64) (models.Theme, error) {
	var theme string
	err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT theme FROM admin WHERE id = ?`), id).Scan(&theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.Theme(theme), nil
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

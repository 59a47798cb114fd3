package users

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

const userColumns = `id, username, password, phone, name, image, theme`

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Theme == "" {
		user.Theme = models.DefaultTheme
	}

	query :=
		`INSERT INTO users (username, password, phone, name, image, theme)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, r.d.Rebind(query),
		user.Username, user.PasswordHash, user.Phone, user.Name, user.Image, string(user.Theme)).Scan(&user.ID)

	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.getOne(ctx, query, username)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.d.Rebind(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user  models.User
		theme string
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Phone, &user.Name, &user.Image, &theme); err != nil {
		return nil, err
	}
	user.Theme = models.Theme(theme)
	return &user, nil
}

func (r *SQLRepository) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	query := `SELECT username, image, theme FROM users WHERE id = ?`

	var (
		p     models.UserProfile
		theme string
	)
	err := r.db.QueryRowContext(ctx, r.d.Rebind(query), id).Scan(&p.Username, &p.Image, &theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Theme = models.Theme(theme)

	return &p, nil
}

func (r *SQLRepository) UpdateProfile(ctx context.Context, id int64, theme models.Theme, image models.ImageUpdate) error {
	if image.Keep() {
		return r.exec(ctx, `UPDATE users SET theme = ? WHERE id = ?`, string(theme), id)
	}
	return r.exec(ctx, `UPDATE users SET image = ?, theme = ? WHERE id = ?`, image.Value(), string(theme), id)
}

func (r *SQLRepository) GetTheme(ctx context.Context, id int64) (models.Theme, error) {
	var theme string
	err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT theme FROM users WHERE id = ?`), id).Scan(&theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return models.Theme(theme), nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password = ? WHERE id = ?`, passwordHash, id)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
}

// exec runs a single-row statement; no affected row means the user does
// not exist.
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

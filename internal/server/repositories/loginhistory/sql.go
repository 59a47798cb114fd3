package loginhistory

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

// timeLayout is fixed width and always UTC so text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, subjectID int64, role models.Role, at time.Time) (*models.LoginHistoryEntry, error) {
	at = at.UTC()

	query :=
		`INSERT INTO login_history (subject_id, role, login_time)
		 VALUES (?, ?, ?)
		 RETURNING id
		 `

	e := &models.LoginHistoryEntry{SubjectID: subjectID, Role: role, LoginTime: at}
	err := r.db.QueryRowContext(ctx, r.d.Rebind(query), subjectID, string(role), at.Format(timeLayout)).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.LoginHistoryEntry, error) {
	query :=
		`SELECT h.id, h.subject_id,
		        CASE WHEN h.role = 'admin' THEN a.username ELSE u.username END,
		        h.role, h.login_time
		 FROM login_history h
		 LEFT JOIN admin a ON h.role = 'admin' AND a.id = h.subject_id
		 LEFT JOIN users u ON h.role = 'user' AND u.id = h.subject_id
		 ORDER BY h.login_time DESC, h.id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.LoginHistoryEntry{}
	for rows.Next() {
		var (
			e         models.LoginHistoryEntry
			role, raw string
		)
		if err := rows.Scan(&e.ID, &e.SubjectID, &e.DisplayName, &role, &raw); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Role = models.Role(role)
		e.LoginTime, err = time.Parse(timeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("login_time %q of entry %d: %w", raw, e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

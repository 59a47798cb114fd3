package events

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

const (
	eventColumns = `e.id, e.user_id, e.title, e.person, e.date, e.time, e.note`
	orderBy      = ` ORDER BY e.date DESC, e.id DESC`
)

func (r *SQLRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	query :=
		`INSERT INTO events (user_id, title, person, date, time, note)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, r.d.Rebind(query),
		event.UserID, event.Title, event.Person, event.Date, event.Time, event.Note).Scan(&event.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return event, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = ?`

	var e models.Event
	err := r.db.QueryRowContext(ctx, r.d.Rebind(query), id).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Person, &e.Date, &e.Time, &e.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &e, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.user_id = ?` + orderBy
	return r.queryEvents(ctx, query, userID)
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]models.OwnedEvent, error) {
	query := `SELECT ` + eventColumns + `, u.username FROM events e JOIN users u ON u.id = e.user_id` + orderBy
	return r.queryOwned(ctx, query)
}

func (r *SQLRepository) SearchByOwner(ctx context.Context, userID int64, keyword string) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events e
		 WHERE e.user_id = ?
		   AND (e.title %[2]s ? ESCAPE '\' OR e.person %[2]s ? ESCAPE '\' OR e.date %[2]s ? ESCAPE '\')`,
		eventColumns, r.d.Like) + orderBy

	p := dbx.ContainsPattern(keyword)
	return r.queryEvents(ctx, query, userID, p, p, p)
}

func (r *SQLRepository) SearchAll(ctx context.Context, keyword string) ([]models.OwnedEvent, error) {
	query := fmt.Sprintf(`SELECT %s, u.username FROM events e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.title %[2]s ? ESCAPE '\' OR e.person %[2]s ? ESCAPE '\'`,
		eventColumns, r.d.Like) + orderBy

	p := dbx.ContainsPattern(keyword)
	return r.queryOwned(ctx, query, p, p)
}

func (r *SQLRepository) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Person, &e.Date, &e.Time, &e.Note); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) queryOwned(ctx context.Context, query string, args ...any) ([]models.OwnedEvent, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.OwnedEvent{}
	for rows.Next() {
		var e models.OwnedEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Person, &e.Date, &e.Time, &e.Note, &e.OwnerUsername); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, event *models.Event) error {
	query :=
		`UPDATE events
		 SET title = ?, person = ?, date = ?, time = ?, note = ?
		 WHERE id = ?
		 `

	res, err := r.db.ExecContext(ctx, r.d.Rebind(query),
		event.Title, event.Person, event.Date, event.Time, event.Note, event.ID)
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

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM events WHERE id = ?`), id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByOwner(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM events WHERE user_id = ?`), userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

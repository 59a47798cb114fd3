package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// EventService is the access-checked front of the events repository. A
// user principal reaches only its own events; an admin reaches all.
type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validator.Validate
	log         logging.Logger
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *EventService {
	return &EventService{
		db:          db,
		repomanager: m,
		validator:   validator.New(),
		log:         log.With("component", "events"),
	}
}

// Create adds an event owned by ownerID.
func (s *EventService) Create(ctx context.Context, p models.Principal, ownerID int64, in models.EventInput) (*models.Event, error) {
	if !p.CanAccessOwner(ownerID) {
		return nil, common.ErrorForbidden
	}
	event, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	event.UserID = ownerID

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByID(ctx, ownerID); err != nil {
			return err
		}
		event, err = s.repomanager.Events(tx).Create(ctx, event)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "event created", "event_id", event.ID, "owner_id", ownerID, "role", string(p.Role))
	return event, nil
}

func (s *EventService) Get(ctx context.Context, p models.Principal, id int64) (*models.Event, error) {
	event, err := s.repomanager.Events(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccessOwner(event.UserID) {
		return nil, common.ErrorForbidden
	}
	return event, nil
}

// ListByOwner returns ownerID's events, newest date first.
func (s *EventService) ListByOwner(ctx context.Context, p models.Principal, ownerID int64) ([]models.Event, error) {
	if !p.CanAccessOwner(ownerID) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Events(s.db).ListByOwner(ctx, ownerID)
}

func (s *EventService) ListAll(ctx context.Context, p models.Principal) ([]models.OwnedEvent, error) {
	if !p.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Events(s.db).ListAll(ctx)
}

// SearchByOwner matches keyword in title, person or date of ownerID's
// events.
func (s *EventService) SearchByOwner(ctx context.Context, p models.Principal, ownerID int64, keyword string) ([]models.Event, error) {
	if !p.CanAccessOwner(ownerID) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Events(s.db).SearchByOwner(ctx, ownerID, keyword)
}

// SearchAll matches keyword in title or person across all users.
func (s *EventService) SearchAll(ctx context.Context, p models.Principal, keyword string) ([]models.OwnedEvent, error) {
	if !p.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Events(s.db).SearchAll(ctx, keyword)
}

// Update overwrites every mutable field of event id. The owner never
// changes.
func (s *EventService) Update(ctx context.Context, p models.Principal, id int64, in models.EventInput) (*models.Event, error) {
	var event *models.Event
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.CanAccessOwner(current.UserID) {
			return common.ErrorForbidden
		}

		event, err = s.prepare(in)
		if err != nil {
			return err
		}
		event.ID = id
		event.UserID = current.UserID
		return repo.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "event updated", "event_id", id, "role", string(p.Role))
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, p models.Principal, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.CanAccessOwner(current.UserID) {
			return common.ErrorForbidden
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "event deleted", "event_id", id, "role", string(p.Role))
	return nil
}

func (s *EventService) prepare(in models.EventInput) (*models.Event, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	tm, err := normalizeTime(in.Time)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Title:  in.Title,
		Person: in.Person,
		Date:   date,
		Time:   tm,
		Note:   in.Note,
	}, nil
}

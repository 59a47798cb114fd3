// Package events persists the events table. Lists and searches are
// ordered by date descending, newest id first within a date.
//
// The repository does not check ownership. Callers that take requests
// from principals go through services.EventService.
package events

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.OwnedEvent, error)
	// SearchByOwner matches keyword as a substring of title, person or date.
	SearchByOwner(ctx context.Context, userID int64, keyword string) ([]models.Event, error)
	// SearchAll matches keyword as a substring of title or person.
	SearchAll(ctx context.Context, keyword string) ([]models.OwnedEvent, error)
	// Update overwrites every mutable field of event.
	Update(ctx context.Context, event *models.Event) error
	// Delete removes the event if it exists.
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, userID int64) (int64, error)
}

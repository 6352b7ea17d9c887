package repository

import (
	"context"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	// List returns events ordered by date ascending.
	List(ctx context.Context) ([]entity.Event, error)
	ListByClub(ctx context.Context, clubID string) ([]entity.Event, error)
	Search(ctx context.Context, q string, limit int) ([]entity.Event, error)
	// Update writes the editable fields. It fails with ErrCapacityBelowCount
	// instead of lowering MaxParticipants under the stored participant count.
	Update(ctx context.Context, e *entity.Event) error
	SetImage(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
	// RecountParticipants sets CurrentParticipants to the number of active
	// registrations, capped at MaxParticipants, and returns the stored event.
	RecountParticipants(ctx context.Context, id string) (*entity.Event, error)
}

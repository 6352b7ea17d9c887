package repository

import (
	"context"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

type RegistrationRepository interface {
	// CreateReservingSeat inserts r and increments its event's participant
	// count as one unit of work. The increment only applies while the event
	// is below capacity (ErrCapacityReached otherwise); a second registration
	// for the same (event, user) fails with ErrDuplicate and leaves the count
	// unchanged.
	CreateReservingSeat(ctx context.Context, r *entity.Registration) error
	// CancelReleasingSeat marks the user's active registration cancelled and
	// decrements the event count, floored at zero, as one unit of work.
	// ErrNotFound when no active registration with that id belongs to userID.
	CancelReleasingSeat(ctx context.Context, registrationID, userID string) (*entity.Registration, error)
	GetByID(ctx context.Context, id string) (*entity.Registration, error)
	// ListByUser returns the user's registrations, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.RegistrationView, error)
	ListByEvent(ctx context.Context, eventID string) ([]entity.Registration, error)
	CountActiveByEvent(ctx context.Context, eventID string) (int, error)
}

package repository

import (
	"context"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Emails are compared in normalized form; Create and Update return
// ErrDuplicate when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, excludeRole entity.Role) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)
	SetClubID(ctx context.Context, id string, clubID *string) error
	// Delete releases the seats held by the user's active registrations and
	// removes the user together with those registrations.
	Delete(ctx context.Context, id string) error
}

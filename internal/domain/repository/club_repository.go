package repository

import (
	"context"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

// ClubRepository persists clubs. Name and email are unique (ErrDuplicate).
// Deleting a club removes its events and their registrations.
type ClubRepository interface {
	Create(ctx context.Context, c *entity.Club) error
	GetByID(ctx context.Context, id string) (*entity.Club, error)
	List(ctx context.Context) ([]entity.Club, error)
	Update(ctx context.Context, c *entity.Club) error
	Delete(ctx context.Context, id string) error
}

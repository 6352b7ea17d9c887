package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

const clubColumns = `id, name, description, category, admin_id, email, status, created_at, updated_at`

type ClubRepository struct {
	pool *pgxpool.Pool
}

var _ repo.ClubRepository = (*ClubRepository)(nil)

func NewClubRepository(pool *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{pool: pool}
}

func scanClub(row pgx.Row) (*entity.Club, error) {
	c := &entity.Club{}
	var adminID *string
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &adminID,
		&c.Email, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	c.AdminID = deref(adminID)
	c.Status = entity.ClubStatus(status)
	return c, nil
}

func (r *ClubRepository) Create(ctx context.Context, c *entity.Club) error {
	if c.Status == "" {
		c.Status = entity.ClubPending
	}
	c.Email = entity.NormalizeEmail(c.Email)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clubs (name, description, category, admin_id, email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Description, c.Category, nullable(c.AdminID), c.Email, string(c.Status))
	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (*entity.Club, error) {
	return scanClub(r.pool.QueryRow(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id))
}

func (r *ClubRepository) List(ctx context.Context) ([]entity.Club, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, mapErr(rows.Err())
}

func (r *ClubRepository) Update(ctx context.Context, c *entity.Club) error {
	fresh, err := scanClub(r.pool.QueryRow(ctx, `
		UPDATE clubs
		SET name = $2, description = $3, category = $4, status = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+clubColumns,
		c.ID, c.Name, c.Description, c.Category, string(c.Status)))
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Delete removes the club; its events and their registrations cascade.
func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

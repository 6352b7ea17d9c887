package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, role, club_id, phone, organization, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

var _ repo.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.ClubID,
		&u.Phone, &u.Organization, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	u.Email = entity.NormalizeEmail(u.Email)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, club_id, phone, organization)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, string(u.Role), u.ClubID, u.Phone, u.Organization)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, entity.NormalizeEmail(email)))
}

// List returns users newest first, skipping excludeRole when set.
func (r *UserRepository) List(ctx context.Context, excludeRole entity.Role) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE $1 = '' OR role <> $1
		ORDER BY created_at DESC
	`, string(excludeRole))
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, mapErr(rows.Err())
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.Email = entity.NormalizeEmail(u.Email)
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $2, email = $3, phone = $4, organization = $5,
		    password_hash = COALESCE(NULLIF($6, ''), password_hash),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		u.ID, u.Name, u.Email, u.Phone, u.Organization, u.Password)
	fresh, err := scanUser(row)
	if err != nil {
		return err
	}
	*u = *fresh
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, string(role)))
}

func (r *UserRepository) SetClubID(ctx context.Context, id string, clubID *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET club_id = $2, updated_at = now() WHERE id = $1`, id, clubID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete gives back the seats of the user's active registrations, then
// removes the user; registrations go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE events e
			SET current_participants = GREATEST(e.current_participants - held.n, 0),
			    updated_at = now()
			FROM (
				SELECT event_id, count(*) AS n
				FROM registrations
				WHERE user_id = $1 AND status <> 'cancelled'
				GROUP BY event_id
			) held
			WHERE e.id = held.event_id
		`, id); err != nil {
			return mapErr(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return mapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

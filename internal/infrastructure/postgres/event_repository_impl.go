package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

const eventColumns = `id, title, description, date, time, location, category,
	max_participants, current_participants, registration_fee, registration_deadline,
	requirements, organizer, image_url, club_id, created_by, status, created_at, updated_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

var _ repo.EventRepository = (*EventRepository)(nil)

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	var createdBy *string
	var status string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Category,
		&e.MaxParticipants, &e.CurrentParticipants, &e.RegistrationFee, &e.RegistrationDeadline,
		&e.Requirements, &e.Organizer, &e.ImageURL, &e.ClubID, &createdBy, &status,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	e.CreatedBy = deref(createdBy)
	e.Status = entity.EventStatus(status)
	return e, nil
}

func collectEvents(rows pgx.Rows, err error) ([]entity.Event, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []entity.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, mapErr(rows.Err())
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	if e.Status == "" {
		e.Status = entity.EventUpcoming
	}
	e.CurrentParticipants = 0
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, date, time, location, category,
			max_participants, registration_fee, registration_deadline, requirements,
			organizer, image_url, club_id, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.Date, e.Time, e.Location, e.Category,
		e.MaxParticipants, e.RegistrationFee, e.RegistrationDeadline, e.Requirements,
		e.Organizer, e.ImageURL, e.ClubID, nullable(e.CreatedBy), string(e.Status))
	return mapErr(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	return collectEvents(r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC, created_at ASC`))
}

func (r *EventRepository) ListByClub(ctx context.Context, clubID string) ([]entity.Event, error) {
	return collectEvents(r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE club_id = $1 ORDER BY date ASC, created_at ASC`, clubID))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search is a case-insensitive substring match used when no search index is configured.
func (r *EventRepository) Search(ctx context.Context, q string, limit int) ([]entity.Event, error) {
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(q)) + "%"
	return collectEvents(r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1 OR location ILIKE $1
		ORDER BY date ASC, created_at ASC
		LIMIT $2
	`, pattern, limit))
}

// Update never lowers max_participants below the stored count; the guard
// runs in the same statement as the write.
func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	fresh, err := scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events
		SET title = $2, description = $3, date = $4, time = $5, location = $6, category = $7,
		    max_participants = $8, registration_fee = $9, registration_deadline = $10,
		    requirements = $11, organizer = $12, image_url = $13, status = $14,
		    updated_at = now()
		WHERE id = $1 AND current_participants <= $8
		RETURNING `+eventColumns,
		e.ID, e.Title, e.Description, e.Date, e.Time, e.Location, e.Category,
		e.MaxParticipants, e.RegistrationFee, e.RegistrationDeadline,
		e.Requirements, e.Organizer, e.ImageURL, string(e.Status)))
	if err == nil {
		*e = *fresh
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, e.ID).Scan(&exists); err != nil {
		return mapErr(err)
	}
	if exists {
		return repo.ErrCapacityBelowCount
	}
	return repo.ErrNotFound
}

func (r *EventRepository) SetImage(ctx context.Context, id, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE events SET image_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EventRepository) RecountParticipants(ctx context.Context, id string) (*entity.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events e
		SET current_participants = LEAST(
		        (SELECT count(*) FROM registrations r WHERE r.event_id = e.id AND r.status <> 'cancelled'),
		        e.max_participants),
		    updated_at = now()
		WHERE e.id = $1
		RETURNING `+eventColumns, id))
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

const registrationColumns = `r.id, r.event_id, r.user_id, r.name, r.email, r.phone, r.organization,
	r.requirements, r.status, r.payment_status, r.payment_amount, r.registration_date,
	r.created_at, r.updated_at`

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

var _ repo.RegistrationRepository = (*RegistrationRepository)(nil)

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func registrationDest(reg *entity.Registration, status, payment *string) []any {
	return []any{&reg.ID, &reg.EventID, &reg.UserID, &reg.Name, &reg.Email, &reg.Phone,
		&reg.Organization, &reg.Requirements, status, payment, &reg.PaymentAmount,
		&reg.RegistrationDate, &reg.CreatedAt, &reg.UpdatedAt}
}

func scanRegistration(row pgx.Row) (*entity.Registration, error) {
	reg := &entity.Registration{}
	var status, payment string
	if err := row.Scan(registrationDest(reg, &status, &payment)...); err != nil {
		return nil, mapErr(err)
	}
	reg.Status = entity.RegistrationStatus(status)
	reg.PaymentStatus = entity.PaymentStatus(payment)
	return reg, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// CreateReservingSeat takes the seat with a conditional increment and
// inserts the registration in the same transaction. A concurrent request
// that already took the last seat makes the increment match no row.
func (r *RegistrationRepository) CreateReservingSeat(ctx context.Context, reg *entity.Registration) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE events
			SET current_participants = current_participants + 1, updated_at = now()
			WHERE id = $1 AND current_participants < max_participants
		`, reg.EventID)
		if err != nil {
			return mapErr(err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, reg.EventID).Scan(&exists); err != nil {
				return mapErr(err)
			}
			if !exists {
				return repo.ErrNotFound
			}
			return repo.ErrCapacityReached
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO registrations (event_id, user_id, name, email, phone, organization,
				requirements, status, payment_status, payment_amount, registration_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()))
			RETURNING id, registration_date, created_at, updated_at
		`, reg.EventID, reg.UserID, reg.Name, reg.Email, reg.Phone, reg.Organization,
			reg.Requirements, string(reg.Status), string(reg.PaymentStatus), reg.PaymentAmount,
			nullTime(reg.RegistrationDate))
		return mapErr(row.Scan(&reg.ID, &reg.RegistrationDate, &reg.CreatedAt, &reg.UpdatedAt))
	})
}

func (r *RegistrationRepository) CancelReleasingSeat(ctx context.Context, registrationID, userID string) (*entity.Registration, error) {
	var out *entity.Registration
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		reg, err := scanRegistration(tx.QueryRow(ctx, `
			UPDATE registrations r
			SET status = 'cancelled', updated_at = now()
			WHERE r.id = $1 AND r.user_id = $2 AND r.status <> 'cancelled'
			RETURNING `+registrationColumns, registrationID, userID))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE events
			SET current_participants = GREATEST(current_participants - 1, 0), updated_at = now()
			WHERE id = $1
		`, reg.EventID); err != nil {
			return mapErr(err)
		}
		out = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*entity.Registration, error) {
	return scanRegistration(r.pool.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations r WHERE r.id = $1`, id))
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]entity.RegistrationView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+registrationColumns+`, e.title, e.date, e.time, e.location
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.registration_date DESC, r.created_at DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.RegistrationView{}
	for rows.Next() {
		var v entity.RegistrationView
		var status, payment string
		dest := append(registrationDest(&v.Registration, &status, &payment),
			&v.EventName, &v.EventDate, &v.EventTime, &v.EventLocation)
		if err := rows.Scan(dest...); err != nil {
			return nil, mapErr(err)
		}
		v.Status = entity.RegistrationStatus(status)
		v.PaymentStatus = entity.PaymentStatus(payment)
		out = append(out, v)
	}
	return out, mapErr(rows.Err())
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]entity.Registration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations r
		WHERE r.event_id = $1
		ORDER BY r.registration_date ASC, r.created_at ASC
	`, eventID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, mapErr(rows.Err())
}

func (r *RegistrationRepository) CountActiveByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE event_id = $1 AND status <> 'cancelled'`, eventID).Scan(&n)
	return n, mapErr(err)
}

package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
)

type outcomes struct {
	mu    sync.Mutex
	kinds map[error]int
}

func (o *outcomes) ObserveRegistration(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kinds == nil {
		o.kinds = map[error]int{}
	}
	if err == nil {
		o.kinds[nil]++
		return
	}
	o.kinds[application.Kind(err)]++
}

func TestRegisterForEvent(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)
	u := a.register(t, "ada@example.com")

	reg, err := a.signUp(u, ev)
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationPending, reg.Status)
	assert.Equal(t, entity.PaymentPending, reg.PaymentStatus)
	assert.Equal(t, 10.0, reg.PaymentAmount)
	assert.Equal(t, 1, a.reload(t, ev).CurrentParticipants)
	assert.Contains(t, a.mail.templates(), mailtpl.RegistrationConfirmed)

	views, err := a.regs.GetUserRegistrations(context.Background(), u, u.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Open night", views[0].EventName)
}

func TestRegisterForEvent_LastSeatHandover(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 1)
	first := a.register(t, "first@example.com")
	second := a.register(t, "second@example.com")

	reg, err := a.signUp(first, ev)
	require.NoError(t, err)

	_, err = a.signUp(second, ev)
	assert.ErrorIs(t, err, application.ErrEventFull)

	_, err = a.regs.CancelRegistration(context.Background(), first, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, a.reload(t, ev).CurrentParticipants)

	_, err = a.signUp(second, ev)
	require.NoError(t, err)
	assert.Equal(t, 1, a.reload(t, ev).CurrentParticipants)
}

func TestRegisterForEvent_ConcurrentSingleSeat(t *testing.T) {
	a := newApp(t)
	obs := &outcomes{}
	a.regs.Observer = obs
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 1)

	const n = 20
	users := make([]*entity.User, n)
	for i := range users {
		users[i] = a.register(t, "racer"+string(rune('a'+i))+"@example.com")
	}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u *entity.User) {
			defer wg.Done()
			_, _ = a.signUp(u, ev)
		}(u)
	}
	wg.Wait()

	assert.Equal(t, 1, obs.kinds[nil])
	assert.Equal(t, n-1, obs.kinds[application.ErrEventFull])
	assert.Equal(t, 1, a.reload(t, ev).CurrentParticipants)
}

func TestRegisterForEvent_Rejections(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)
	u := a.register(t, "ada@example.com")
	other := a.register(t, "bob@example.com")

	_, err := a.signUp(u, ev)
	require.NoError(t, err)

	_, err = a.signUp(u, ev)
	assert.ErrorIs(t, err, application.ErrConflict)
	assert.Equal(t, "you are already registered for this event", application.Message(err))
	assert.Equal(t, 1, a.reload(t, ev).CurrentParticipants)

	_, err = a.regs.RegisterForEvent(context.Background(), u, application.RegistrationInput{
		EventID: ev.ID, UserID: other.ID, Name: "x", Email: "x@example.com", Phone: "1",
	})
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = a.regs.RegisterForEvent(context.Background(), u, application.RegistrationInput{
		EventID: ev.ID, UserID: u.ID, Name: "x", Email: "x@example.com",
	})
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = a.regs.RegisterForEvent(context.Background(), u, application.RegistrationInput{
		EventID: "not-an-id", UserID: u.ID, Name: "x", Email: "x@example.com", Phone: "1",
	})
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = a.regs.RegisterForEvent(context.Background(), other, application.RegistrationInput{
		EventID: "00000000-0000-0000-0000-000000000000", UserID: other.ID, Name: "x", Email: "x@example.com", Phone: "1",
	})
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = a.signUp(nil, ev)
	assert.ErrorIs(t, err, application.ErrUnauthenticated)
}

// vanishingRegistrations runs remove just before the seat is reserved,
// standing in for a delete that lands between the checks and the write.
type vanishingRegistrations struct {
	repo.RegistrationRepository
	remove func(ctx context.Context) error
}

func (v vanishingRegistrations) CreateReservingSeat(ctx context.Context, reg *entity.Registration) error {
	if err := v.remove(ctx); err != nil {
		return err
	}
	return v.RegistrationRepository.CreateReservingSeat(ctx, reg)
}

func TestRegisterForEvent_DeletedBeforeReservation(t *testing.T) {
	tests := []struct {
		name    string
		remove  func(a *app, u *entity.User, ev *entity.Event) func(context.Context) error
		message string
	}{
		{
			name: "user",
			remove: func(a *app, u *entity.User, _ *entity.Event) func(context.Context) error {
				return func(ctx context.Context) error { return a.store.Users().Delete(ctx, u.ID) }
			},
			message: "user not found",
		},
		{
			name: "event",
			remove: func(a *app, _ *entity.User, ev *entity.Event) func(context.Context) error {
				return func(ctx context.Context) error { return a.store.Events().Delete(ctx, ev.ID) }
			},
			message: "event not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t)
			admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
			ev := a.event(t, admin, 3)
			u := a.register(t, "ada@example.com")
			a.regs.Registrations = vanishingRegistrations{
				RegistrationRepository: a.store.Registrations(),
				remove:                 tt.remove(a, u, ev),
			}

			_, err := a.signUp(u, ev)
			assert.ErrorIs(t, err, application.ErrNotFound)
			assert.Equal(t, tt.message, application.Message(err))
		})
	}
}

func TestRegisterForEvent_AfterDeadline(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)
	u := a.register(t, "ada@example.com")
	a.regs.Now = func() time.Time { return ev.RegistrationDeadline.Add(time.Minute) }

	_, err := a.signUp(u, ev)
	assert.ErrorIs(t, err, application.ErrRegistrationClosed)
	assert.Equal(t, 0, a.reload(t, ev).CurrentParticipants)
}

func TestRegisterForEvent_ClubAdminCanAttend(t *testing.T) {
	a := newApp(t)
	host := a.clubAdmin(t, "chess@example.com", "Chess Club")
	guest := a.clubAdmin(t, "go@example.com", "Go Club")
	ev := a.event(t, host, 3)

	_, err := a.signUp(guest, ev)
	assert.NoError(t, err)
}

func TestCancelRegistration(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)
	u := a.register(t, "ada@example.com")
	other := a.register(t, "bob@example.com")
	reg, err := a.signUp(u, ev)
	require.NoError(t, err)

	_, err = a.regs.CancelRegistration(context.Background(), other, reg.ID)
	assert.ErrorIs(t, err, application.ErrForbidden)

	got, err := a.regs.CancelRegistration(context.Background(), u, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RegistrationCancelled, got.Status)
	assert.Equal(t, 0, a.reload(t, ev).CurrentParticipants)
	assert.Contains(t, a.mail.templates(), mailtpl.RegistrationCancelled)

	_, err = a.regs.CancelRegistration(context.Background(), u, reg.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
	assert.Equal(t, 0, a.reload(t, ev).CurrentParticipants)

	_, err = a.regs.CancelRegistration(context.Background(), u, "bad")
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestGetUserRegistrations_Access(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	u := a.register(t, "ada@example.com")
	other := a.register(t, "bob@example.com")

	_, err := a.regs.GetUserRegistrations(context.Background(), other, u.ID)
	assert.ErrorIs(t, err, application.ErrForbidden)

	views, err := a.regs.GetUserRegistrations(context.Background(), root, u.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = a.regs.GetUserRegistrations(context.Background(), nil, u.ID)
	assert.ErrorIs(t, err, application.ErrUnauthenticated)
}

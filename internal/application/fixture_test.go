package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	"github.com/oksasatya/clubevents/internal/infrastructure/memory"
	"github.com/oksasatya/clubevents/pkg/helpers"
)

type sentMail struct {
	mu   sync.Mutex
	sent []application.Notification
}

func (m *sentMail) Notify(_ context.Context, n application.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

func (m *sentMail) templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, n := range m.sent {
		out = append(out, n.Template)
	}
	return out
}

type app struct {
	store  *memory.Store
	jwt    *helpers.JWTManager
	mail   *sentMail
	auth   *application.AuthService
	clubs  *application.ClubService
	events *application.EventService
	regs   *application.RegistrationService
	admin  *application.AdminService
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := memory.NewStore()
	logger := helpers.NewDiscardLogger()
	jwt := helpers.NewJWTManager("test-secret", time.Hour, "clubevents-test")
	mail := &sentMail{}

	a := &app{
		store:  store,
		jwt:    jwt,
		mail:   mail,
		auth:   application.NewAuthService(store.Users(), store.Clubs(), jwt, logger),
		clubs:  application.NewClubService(store.Clubs(), store.Users(), logger),
		events: application.NewEventService(store.Events(), store.Clubs(), store.Registrations(), logger),
		regs:   application.NewRegistrationService(store.Events(), store.Users(), store.Registrations(), logger),
		admin:  application.NewAdminService(store.Users(), store.Events(), logger),
	}
	a.auth.Notifier = mail
	a.clubs.Notifier = mail
	a.events.Notifier = mail
	a.regs.Notifier = mail
	return a
}

func (a *app) superadmin(t *testing.T) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword("admin123")
	require.NoError(t, err)
	u := &entity.User{Name: "Root", Email: "root@example.com", Password: hash, Role: entity.RoleSuperAdmin}
	require.NoError(t, a.store.Users().Create(context.Background(), u))
	return u
}

func (a *app) register(t *testing.T, email string) *entity.User {
	t.Helper()
	s, err := a.auth.Register(context.Background(), application.RegisterInput{
		Name: "Member " + email, Email: email, Password: "secret1", Phone: "555-0100",
	})
	require.NoError(t, err)
	return s.User
}

func (a *app) clubAdmin(t *testing.T, email, org string) *entity.User {
	t.Helper()
	s, err := a.auth.Register(context.Background(), application.RegisterInput{
		Name: "Admin " + org, Email: email, Password: "secret1", Role: "clubadmin", Organization: org,
	})
	require.NoError(t, err)
	return s.User
}

// event creates an event of admin's club with a deadline one day out.
func (a *app) event(t *testing.T, admin *entity.User, max int) *entity.Event {
	t.Helper()
	deadline := time.Now().Add(24 * time.Hour)
	e, err := a.events.CreateEvent(context.Background(), admin, application.EventInput{
		Title:                "Open night",
		Description:          "Bring a board",
		Date:                 time.Now().Add(48 * time.Hour),
		Time:                 "19:00",
		Location:             "Hall B",
		Category:             "Games",
		MaxParticipants:      max,
		RegistrationFee:      10,
		RegistrationDeadline: &deadline,
	})
	require.NoError(t, err)
	return e
}

func (a *app) signUp(u *entity.User, ev *entity.Event) (*entity.Registration, error) {
	return a.regs.RegisterForEvent(context.Background(), u, application.RegistrationInput{
		EventID: ev.ID, UserID: u.ID, Name: u.Name, Email: u.Email, Phone: "555-0100",
	})
}

func (a *app) reload(t *testing.T, ev *entity.Event) *entity.Event {
	t.Helper()
	got, err := a.store.Events().GetByID(context.Background(), ev.ID)
	require.NoError(t, err)
	return got
}

package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
	"github.com/oksasatya/clubevents/pkg/sanitize"
)

type RegistrationService struct {
	Events        repo.EventRepository
	Users         repo.UserRepository
	Registrations repo.RegistrationRepository
	Access        *Access
	Notifier      Notifier
	Observer      RegistrationObserver
	Branding      mailtpl.Branding
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewRegistrationService(events repo.EventRepository, users repo.UserRepository, regs repo.RegistrationRepository, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{
		Events:        events,
		Users:         users,
		Registrations: regs,
		Access:        NewAccess(nil),
		Logger:        logger,
		Now:           time.Now,
	}
}

func (s *RegistrationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *RegistrationService) observe(op string, err error) {
	if s.Observer != nil {
		s.Observer.ObserveRegistration(op, err)
	}
}

type RegistrationInput struct {
	EventID      string
	UserID       string
	Name         string
	Email        string
	Phone        string
	Organization string
	Requirements string
}

// RegisterForEvent enrolls actor in an event. The seat is reserved and the
// registration stored as one unit of work; a request that loses the last
// seat to a concurrent one fails with ErrEventFull.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, actor *entity.User, in RegistrationInput) (reg *entity.Registration, err error) {
	defer func() { s.observe("register", err) }()

	if err := s.Access.Authorize(actor, ActionRegistrationCreate); err != nil {
		return nil, err
	}
	in.EventID = strings.TrimSpace(in.EventID)
	in.UserID = strings.TrimSpace(in.UserID)
	name := sanitize.Text(in.Name)
	email := entity.NormalizeEmail(in.Email)
	phone := sanitize.Text(in.Phone)
	if in.EventID == "" || in.UserID == "" || name == "" || email == "" || phone == "" {
		return nil, newError(ErrValidation, "eventId, userId, name, email and phone are required")
	}
	if !validID(in.EventID) || !validID(in.UserID) {
		return nil, newError(ErrValidation, "invalid id format")
	}
	if in.UserID != actor.ID {
		return nil, newError(ErrForbidden, "cannot register another user")
	}

	ev, err := s.Events.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, storeError(err, "event")
	}
	if _, err := s.Users.GetByID(ctx, in.UserID); err != nil {
		return nil, storeError(err, "user")
	}
	now := s.now()
	if ev.RegistrationClosed(now) {
		return nil, newError(ErrRegistrationClosed, "registration deadline has passed")
	}
	if ev.IsFull() {
		return nil, newError(ErrEventFull, "event is full")
	}

	reg = &entity.Registration{
		EventID:          ev.ID,
		UserID:           in.UserID,
		Name:             name,
		Email:            email,
		Phone:            phone,
		Organization:     sanitize.Text(in.Organization),
		Requirements:     sanitize.Text(in.Requirements),
		Status:           entity.RegistrationPending,
		PaymentStatus:    entity.PaymentPending,
		PaymentAmount:    ev.RegistrationFee,
		RegistrationDate: now,
	}
	if err := s.Registrations.CreateReservingSeat(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repo.ErrCapacityReached):
			return nil, newError(ErrEventFull, "event is full")
		case errors.Is(err, repo.ErrDuplicate):
			return nil, newError(ErrConflict, "you are already registered for this event")
		case errors.Is(err, repo.ErrNotFound):
			// event or user was deleted after the checks above
			if _, evErr := s.Events.GetByID(ctx, reg.EventID); evErr == nil {
				return nil, newError(ErrNotFound, "user not found")
			}
			return nil, newError(ErrNotFound, "event not found")
		}
		return nil, internalError("create registration", err)
	}

	notify(ctx, s.Notifier, s.Logger, Notification{
		To:       reg.Email,
		Template: mailtpl.RegistrationConfirmed,
		Data: mailtpl.NewData(s.Branding, mailtpl.RegistrationConfirmed, reg.Name, reg.Email,
			mailtpl.WithEvent(ev.Title, ev.Date, ev.Time, ev.Location),
			mailtpl.WithAmount(reg.PaymentAmount),
			mailtpl.WithTime(now),
		),
	})
	return reg, nil
}

// CancelRegistration cancels actor's own registration and frees its seat.
// Cancelling twice fails with ErrNotFound and frees nothing.
func (s *RegistrationService) CancelRegistration(ctx context.Context, actor *entity.User, registrationID string) (reg *entity.Registration, err error) {
	defer func() { s.observe("cancel", err) }()

	if err := s.Access.Authorize(actor, ActionRegistrationCancel); err != nil {
		return nil, err
	}
	if !validID(registrationID) {
		return nil, newError(ErrValidation, "invalid registration id")
	}
	existing, err := s.Registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, storeError(err, "registration")
	}
	if err := RequireRegistrationOwner(actor, existing); err != nil {
		return nil, err
	}
	reg, err = s.Registrations.CancelReleasingSeat(ctx, registrationID, actor.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(ErrNotFound, "no active registration found for this user")
		}
		return nil, internalError("cancel registration", err)
	}

	if ev, err := s.Events.GetByID(ctx, reg.EventID); err == nil {
		notify(ctx, s.Notifier, s.Logger, Notification{
			To:       reg.Email,
			Template: mailtpl.RegistrationCancelled,
			Data: mailtpl.NewData(s.Branding, mailtpl.RegistrationCancelled, reg.Name, reg.Email,
				mailtpl.WithEvent(ev.Title, ev.Date, ev.Time, ev.Location),
				mailtpl.WithTime(s.now()),
			),
		})
	}
	return reg, nil
}

// GetUserRegistrations lists userID's registrations with their event details.
// Users read their own; superadmins may read anyone's.
func (s *RegistrationService) GetUserRegistrations(ctx context.Context, actor *entity.User, userID string) ([]entity.RegistrationView, error) {
	if !validID(userID) {
		return nil, newError(ErrValidation, "invalid user id")
	}
	action := ActionRegistrationListOwn
	if actor != nil && actor.ID != userID {
		action = ActionRegistrationListAny
	}
	if err := s.Access.Authorize(actor, action); err != nil {
		return nil, err
	}
	views, err := s.Registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "registration")
	}
	return views, nil
}

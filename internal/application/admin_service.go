package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

// AdminService holds the superadmin's user management and maintenance operations.
type AdminService struct {
	Users  repo.UserRepository
	Events repo.EventRepository
	Access *Access
	Logger *logrus.Logger
}

func NewAdminService(users repo.UserRepository, events repo.EventRepository, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Events: events, Access: NewAccess(nil), Logger: logger}
}

// ListUsers returns every account except superadmins, newest first.
func (s *AdminService) ListUsers(ctx context.Context, actor *entity.User) ([]entity.User, error) {
	if err := s.Access.Authorize(actor, ActionUserList); err != nil {
		return nil, err
	}
	users, err := s.Users.List(ctx, entity.RoleSuperAdmin)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return users, nil
}

// UpdateUserRole switches a user between user and clubadmin. Identity is
// re-read on every request, so the change applies to the user's next call.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor *entity.User, userID, role string) (*entity.User, error) {
	if err := s.Access.Authorize(actor, ActionUserUpdateRole); err != nil {
		return nil, err
	}
	if !validID(userID) {
		return nil, newError(ErrValidation, "invalid user id")
	}
	r := entity.Role(role)
	if r != entity.RoleUser && r != entity.RoleClubAdmin {
		return nil, newError(ErrValidation, "invalid role, must be either user or clubadmin")
	}
	u, err := s.Users.UpdateRole(ctx, userID, r)
	if err != nil {
		return nil, storeError(err, "user")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role, "by": actor.ID}).Info("user role updated")
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if err := s.Access.Authorize(actor, ActionUserDelete); err != nil {
		return err
	}
	if !validID(userID) {
		return newError(ErrValidation, "invalid user id")
	}
	if userID == actor.ID {
		return newError(ErrValidation, "cannot delete your own account")
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return storeError(err, "user")
	}
	return nil
}

// ReconcileResult reports a participant count before and after reconciliation.
type ReconcileResult struct {
	EventID  string `json:"eventId"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
}

// ReconcileParticipants resets an event's participant count to the number
// of its active registrations.
func (s *AdminService) ReconcileParticipants(ctx context.Context, actor *entity.User, eventID string) (*ReconcileResult, error) {
	if err := s.Access.Authorize(actor, ActionEventReconcile); err != nil {
		return nil, err
	}
	if !validID(eventID) {
		return nil, newError(ErrValidation, "invalid event id")
	}
	before, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, storeError(err, "event")
	}
	after, err := s.Events.RecountParticipants(ctx, eventID)
	if err != nil {
		return nil, storeError(err, "event")
	}
	res := &ReconcileResult{EventID: eventID, Previous: before.CurrentParticipants, Current: after.CurrentParticipants}
	if res.Previous != res.Current && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"event_id": eventID,
			"previous": res.Previous,
			"current":  res.Current,
		}).Warn("participant count reconciled")
	}
	return res, nil
}

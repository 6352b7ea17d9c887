package application

import (
	"github.com/oksasatya/clubevents/internal/domain/entity"
)

// Action names a role-gated operation.
type Action string

const (
	ActionClubCreate Action = "club:create"
	ActionClubUpdate Action = "club:update"
	ActionClubDelete Action = "club:delete"

	ActionEventCreate            Action = "event:create"
	ActionEventUpdate            Action = "event:update"
	ActionEventDelete            Action = "event:delete"
	ActionEventListOwn           Action = "event:list-own"
	ActionEventAnnounce          Action = "event:announce"
	ActionEventListRegistrations Action = "event:list-registrations"
	ActionEventUploadImage       Action = "event:upload-image"
	ActionEventReconcile         Action = "event:reconcile"

	ActionRegistrationCreate  Action = "registration:create"
	ActionRegistrationCancel  Action = "registration:cancel"
	ActionRegistrationListOwn Action = "registration:list-own"
	ActionRegistrationListAny Action = "registration:list-any"

	ActionUserList       Action = "user:list"
	ActionUserUpdateRole Action = "user:update-role"
	ActionUserDelete     Action = "user:delete"

	ActionProfileUpdate Action = "profile:update"
)

// Policy maps (role, action) to allow. Anything absent is denied.
type Policy map[entity.Role]map[Action]bool

func allow(actions ...Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

var attendeeActions = []Action{
	ActionRegistrationCreate,
	ActionRegistrationCancel,
	ActionRegistrationListOwn,
	ActionProfileUpdate,
}

// DefaultPolicy is the access table of the application.
var DefaultPolicy = Policy{
	entity.RoleUser: allow(attendeeActions...),
	entity.RoleClubAdmin: allow(append([]Action{
		ActionEventCreate,
		ActionEventUpdate,
		ActionEventDelete,
		ActionEventListOwn,
		ActionEventAnnounce,
		ActionEventListRegistrations,
		ActionEventUploadImage,
	}, attendeeActions...)...),
	entity.RoleSuperAdmin: allow(append([]Action{
		ActionClubCreate,
		ActionClubUpdate,
		ActionClubDelete,
		ActionEventReconcile,
		ActionRegistrationListAny,
		ActionUserList,
		ActionUserUpdateRole,
		ActionUserDelete,
	}, attendeeActions...)...),
}

func (p Policy) Allows(role entity.Role, action Action) bool {
	return p[role][action]
}

// Access answers authorization questions against a Policy.
type Access struct {
	Policy Policy
}

func NewAccess(p Policy) *Access {
	if p == nil {
		p = DefaultPolicy
	}
	return &Access{Policy: p}
}

// Authorize fails with ErrUnauthenticated for a nil user and ErrForbidden
// when the user's role may not perform action.
func (a *Access) Authorize(u *entity.User, action Action) error {
	if u == nil {
		return newError(ErrUnauthenticated, "authentication required")
	}
	if !a.Policy.Allows(u.Role, action) {
		return newError(ErrForbidden, "not allowed to "+string(action))
	}
	return nil
}

func RequireRole(u *entity.User, role entity.Role) error {
	if u == nil {
		return newError(ErrUnauthenticated, "authentication required")
	}
	if u.Role != role {
		return newError(ErrForbidden, "requires role "+string(role))
	}
	return nil
}

// RequireClubOwnership passes only for the club's own admin.
func RequireClubOwnership(u *entity.User, club *entity.Club) error {
	if u == nil {
		return newError(ErrUnauthenticated, "authentication required")
	}
	if club == nil || club.AdminID == "" || club.AdminID != u.ID {
		return newError(ErrForbidden, "not the admin of this club")
	}
	return nil
}

func RequireRegistrationOwner(u *entity.User, reg *entity.Registration) error {
	if u == nil {
		return newError(ErrUnauthenticated, "authentication required")
	}
	if reg == nil || reg.UserID != u.ID {
		return newError(ErrForbidden, "not the owner of this registration")
	}
	return nil
}

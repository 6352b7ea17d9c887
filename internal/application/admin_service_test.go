package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
)

func TestListUsers_HidesSuperadmins(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	a.register(t, "ada@example.com")
	a.clubAdmin(t, "chess@example.com", "Chess Club")

	users, err := a.admin.ListUsers(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, entity.RoleSuperAdmin, u.Role)
	}

	_, err = a.admin.ListUsers(context.Background(), &users[0])
	assert.ErrorIs(t, err, application.ErrForbidden)
}

func TestUpdateUserRole(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	u := a.register(t, "ada@example.com")

	got, err := a.admin.UpdateUserRole(context.Background(), root, u.ID, "clubadmin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClubAdmin, got.Role)

	_, err = a.admin.UpdateUserRole(context.Background(), root, u.ID, "superadmin")
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = a.admin.UpdateUserRole(context.Background(), root, "00000000-0000-0000-0000-000000000000", "user")
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = a.admin.UpdateUserRole(context.Background(), got, root.ID, "user")
	assert.ErrorIs(t, err, application.ErrForbidden)
}

func TestDeleteUser(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 2)
	u := a.register(t, "ada@example.com")
	_, err := a.signUp(u, ev)
	require.NoError(t, err)

	assert.ErrorIs(t, a.admin.DeleteUser(context.Background(), root, root.ID), application.ErrValidation)

	require.NoError(t, a.admin.DeleteUser(context.Background(), root, u.ID))
	assert.Equal(t, 0, a.reload(t, ev).CurrentParticipants)
	assert.ErrorIs(t, a.admin.DeleteUser(context.Background(), root, u.ID), application.ErrNotFound)
}

func TestReconcileParticipants(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 4)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := a.signUp(a.register(t, email), ev)
		require.NoError(t, err)
	}
	a.store.Events().SetParticipants(ev.ID, 4)

	res, err := a.admin.ReconcileParticipants(context.Background(), root, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Previous)
	assert.Equal(t, 2, res.Current)
	assert.Equal(t, 2, a.reload(t, ev).CurrentParticipants)

	_, err = a.admin.ReconcileParticipants(context.Background(), admin, ev.ID)
	assert.ErrorIs(t, err, application.ErrForbidden)
}

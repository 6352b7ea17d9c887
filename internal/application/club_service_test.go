package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

func newClubInput(name, email string) application.CreateClubInput {
	return application.CreateClubInput{
		Name: name, Description: "<p>We play</p><script>x()</script>", Category: "Games",
		Email: email, Password: "secret1",
	}
}

func TestCreateClub(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)

	cw, err := a.clubs.CreateClub(context.Background(), root, newClubInput("Chess", "Chess@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.ClubActive, cw.Status)
	assert.Equal(t, "chess@example.com", cw.Email)
	assert.Equal(t, "<p>We play</p>", cw.Description)
	require.NotNil(t, cw.Admin)
	assert.Equal(t, entity.RoleClubAdmin, cw.Admin.Role)

	admin, err := a.store.Users().GetByID(context.Background(), cw.AdminID)
	require.NoError(t, err)
	require.NotNil(t, admin.ClubID)
	assert.Equal(t, cw.ID, *admin.ClubID)

	s, err := a.auth.Login(context.Background(), "chess@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, s.User.ID)
}

func TestCreateClub_Rules(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	user := a.register(t, "ada@example.com")

	_, err := a.clubs.CreateClub(context.Background(), user, newClubInput("Chess", "chess@example.com"))
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = a.clubs.CreateClub(context.Background(), nil, newClubInput("Chess", "chess@example.com"))
	assert.ErrorIs(t, err, application.ErrUnauthenticated)

	in := newClubInput("Chess", "chess@example.com")
	in.Category = ""
	_, err = a.clubs.CreateClub(context.Background(), root, in)
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = a.clubs.CreateClub(context.Background(), root, newClubInput("Chess", "ada@example.com"))
	assert.ErrorIs(t, err, application.ErrConflict)

	clubs, err := a.clubs.ListClubs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clubs)
}

func TestListAndGetClubs(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	first, err := a.clubs.CreateClub(context.Background(), root, newClubInput("Chess", "chess@example.com"))
	require.NoError(t, err)
	second, err := a.clubs.CreateClub(context.Background(), root, newClubInput("Go", "go@example.com"))
	require.NoError(t, err)

	clubs, err := a.clubs.ListClubs(context.Background())
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	assert.Equal(t, second.ID, clubs[0].ID)
	assert.Equal(t, first.ID, clubs[1].ID)
	require.NotNil(t, clubs[1].Admin)
	assert.Equal(t, "chess@example.com", clubs[1].Admin.Email)

	got, err := a.clubs.GetClub(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chess", got.Name)

	_, err = a.clubs.GetClub(context.Background(), "nope")
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = a.clubs.GetClub(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestUpdateClub(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")

	active := "active"
	cw, err := a.clubs.UpdateClub(context.Background(), root, *admin.ClubID, application.UpdateClubInput{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, entity.ClubActive, cw.Status)

	bogus := "archived"
	_, err = a.clubs.UpdateClub(context.Background(), root, *admin.ClubID, application.UpdateClubInput{Status: &bogus})
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = a.clubs.UpdateClub(context.Background(), admin, *admin.ClubID, application.UpdateClubInput{Status: &active})
	assert.ErrorIs(t, err, application.ErrForbidden)
}

func TestDeleteClub_RemovesAdminEventsAndRegistrations(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 5)
	member := a.register(t, "ada@example.com")
	_, err := a.signUp(member, ev)
	require.NoError(t, err)

	require.NoError(t, a.clubs.DeleteClub(context.Background(), root, *admin.ClubID))

	_, err = a.auth.Login(context.Background(), "chess@example.com", "secret1")
	assert.ErrorIs(t, err, application.ErrUnauthenticated)
	_, err = a.store.Events().GetByID(context.Background(), ev.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	views, err := a.regs.GetUserRegistrations(context.Background(), member, member.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	err = a.clubs.DeleteClub(context.Background(), root, *admin.ClubID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

type undeletableUsers struct {
	repo.UserRepository
}

func (undeletableUsers) Delete(context.Context, string) error {
	return errors.New("users table locked")
}

type undeletableClubs struct {
	repo.ClubRepository
}

func (undeletableClubs) Delete(context.Context, string) error {
	return errors.New("clubs table locked")
}

func TestDeleteClub_AdminDeleteFailureKeepsClub(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	a.clubs.Users = undeletableUsers{a.store.Users()}

	err := a.clubs.DeleteClub(context.Background(), root, *admin.ClubID)
	assert.ErrorIs(t, err, application.ErrInternal)

	_, err = a.store.Clubs().GetByID(context.Background(), *admin.ClubID)
	assert.NoError(t, err)
	_, err = a.store.Users().GetByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestDeleteClub_ClubDeleteFailureAfterAdminRemoved(t *testing.T) {
	a := newApp(t)
	root := a.superadmin(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	a.clubs.Clubs = undeletableClubs{a.store.Clubs()}

	err := a.clubs.DeleteClub(context.Background(), root, *admin.ClubID)
	assert.ErrorIs(t, err, application.ErrInternal)

	_, err = a.store.Users().GetByID(context.Background(), admin.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = a.store.Clubs().GetByID(context.Background(), *admin.ClubID)
	assert.NoError(t, err)
}

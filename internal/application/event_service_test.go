package application_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
)

func TestCreateEvent_Defaults(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	date := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	e, err := a.events.CreateEvent(context.Background(), admin, application.EventInput{
		Title: "Blitz", Description: "Five minute games", Date: date, Time: "18:00",
		Location: "Cafe", Category: "Games", MaxParticipants: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, *admin.ClubID, e.ClubID)
	assert.Equal(t, "Chess Club", e.Organizer)
	assert.Equal(t, date, e.RegistrationDeadline)
	assert.Equal(t, entity.EventUpcoming, e.Status)
	assert.Equal(t, 0, e.CurrentParticipants)
	assert.Equal(t, admin.ID, e.CreatedBy)
}

func TestCreateEvent_Rules(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	other := a.clubAdmin(t, "go@example.com", "Go Club")
	user := a.register(t, "ada@example.com")
	valid := application.EventInput{
		Title: "Blitz", Description: "d", Date: time.Now().Add(time.Hour), Time: "18:00",
		Location: "Cafe", Category: "Games", MaxParticipants: 8,
	}

	_, err := a.events.CreateEvent(context.Background(), user, valid)
	assert.ErrorIs(t, err, application.ErrForbidden)

	foreign := valid
	foreign.ClubID = *admin.ClubID
	_, err = a.events.CreateEvent(context.Background(), other, foreign)
	assert.ErrorIs(t, err, application.ErrForbidden)

	zero := valid
	zero.MaxParticipants = 0
	_, err = a.events.CreateEvent(context.Background(), admin, zero)
	assert.ErrorIs(t, err, application.ErrValidation)

	negative := valid
	negative.RegistrationFee = -1
	_, err = a.events.CreateEvent(context.Background(), admin, negative)
	assert.ErrorIs(t, err, application.ErrValidation)

	missing := valid
	missing.Location = " "
	_, err = a.events.CreateEvent(context.Background(), admin, missing)
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestUpdateEvent(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	other := a.clubAdmin(t, "go@example.com", "Go Club")
	ev := a.event(t, admin, 3)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := a.signUp(a.register(t, email), ev)
		require.NoError(t, err)
	}

	title := "Renamed"
	got, err := a.events.UpdateEvent(context.Background(), admin, ev.ID, application.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 2, got.CurrentParticipants)

	_, err = a.events.UpdateEvent(context.Background(), other, ev.ID, application.EventPatch{Title: &title})
	assert.ErrorIs(t, err, application.ErrForbidden)

	one := 1
	_, err = a.events.UpdateEvent(context.Background(), admin, ev.ID, application.EventPatch{MaxParticipants: &one})
	assert.ErrorIs(t, err, application.ErrValidation)
	assert.Equal(t, 3, a.reload(t, ev).MaxParticipants)

	two := 2
	got, err = a.events.UpdateEvent(context.Background(), admin, ev.ID, application.EventPatch{MaxParticipants: &two})
	require.NoError(t, err)
	assert.True(t, got.IsFull())

	status := "postponed"
	_, err = a.events.UpdateEvent(context.Background(), admin, ev.ID, application.EventPatch{Status: &status})
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestDeleteEvent(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	other := a.clubAdmin(t, "go@example.com", "Go Club")
	ev := a.event(t, admin, 3)

	assert.ErrorIs(t, a.events.DeleteEvent(context.Background(), other, ev.ID), application.ErrForbidden)
	require.NoError(t, a.events.DeleteEvent(context.Background(), admin, ev.ID))
	_, err := a.events.GetEvent(context.Background(), ev.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestListEvents_SoonestFirst(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	for _, days := range []int{9, 3, 6} {
		_, err := a.events.CreateEvent(context.Background(), admin, application.EventInput{
			Title: "Day", Description: "d", Date: time.Now().AddDate(0, 0, days), Time: "18:00",
			Location: "Cafe", Category: "Games", MaxParticipants: 8,
		})
		require.NoError(t, err)
	}
	events, err := a.events.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].Date.Before(events[1].Date))
	assert.True(t, events[1].Date.Before(events[2].Date))

	mine, err := a.events.ListMyEvents(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, err = a.events.ListMyEvents(context.Background(), a.register(t, "ada@example.com"))
	assert.ErrorIs(t, err, application.ErrForbidden)
}

type fakeIndex struct {
	ids     []string
	err     error
	indexed map[string]bool
}

func (f *fakeIndex) Index(_ context.Context, e *entity.Event) error {
	if f.indexed == nil {
		f.indexed = map[string]bool{}
	}
	f.indexed[e.ID] = true
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]string, error) {
	return f.ids, f.err
}

func TestSearchEvents(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)

	_, err := a.events.SearchEvents(context.Background(), "  ", 0)
	assert.ErrorIs(t, err, application.ErrValidation)

	found, err := a.events.SearchEvents(context.Background(), "BOARD", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ev.ID, found[0].ID)

	idx := &fakeIndex{ids: []string{ev.ID, "00000000-0000-0000-0000-000000000000"}}
	a.events.Index = idx
	found, err = a.events.SearchEvents(context.Background(), "anything", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ev.ID, found[0].ID)

	idx.err = errors.New("cluster down")
	found, err = a.events.SearchEvents(context.Background(), "hall", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	second := a.event(t, admin, 3)
	assert.True(t, idx.indexed[second.ID])
	require.NoError(t, a.events.DeleteEvent(context.Background(), admin, second.ID))
	assert.False(t, idx.indexed[second.ID])
}

type fakeImages struct {
	path string
	body string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.body = objectPath, string(b)
	return "https://cdn.example.com/" + objectPath, nil
}

func TestUploadImage(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 3)

	_, err := a.events.UploadImage(context.Background(), admin, ev.ID, "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, application.ErrInternal)

	images := &fakeImages{}
	a.events.Images = images
	_, err = a.events.UploadImage(context.Background(), admin, ev.ID, "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, application.ErrValidation)

	got, err := a.events.UploadImage(context.Background(), admin, ev.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(images.path, "events/"+ev.ID+"/"))
	assert.True(t, strings.HasSuffix(images.path, ".png"))
	assert.Equal(t, "png", images.body)
	assert.Equal(t, got.ImageURL, a.reload(t, ev).ImageURL)
}

func TestAnnounceAndListRegistrations(t *testing.T) {
	a := newApp(t)
	admin := a.clubAdmin(t, "chess@example.com", "Chess Club")
	ev := a.event(t, admin, 5)
	stay := a.register(t, "stay@example.com")
	leave := a.register(t, "leave@example.com")
	_, err := a.signUp(stay, ev)
	require.NoError(t, err)
	reg, err := a.signUp(leave, ev)
	require.NoError(t, err)
	_, err = a.regs.CancelRegistration(context.Background(), leave, reg.ID)
	require.NoError(t, err)

	regs, err := a.events.ListEventRegistrations(context.Background(), admin, ev.ID)
	require.NoError(t, err)
	assert.Len(t, regs, 2)

	_, err = a.events.ListEventRegistrations(context.Background(), stay, ev.ID)
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = a.events.Announce(context.Background(), admin, ev.ID, "", "body")
	assert.ErrorIs(t, err, application.ErrValidation)

	before := len(a.mail.templates())
	n, err := a.events.Announce(context.Background(), admin, ev.ID, "Room change", "We moved to Hall C")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	sent := a.mail.templates()
	require.Len(t, sent, before+1)
	assert.Equal(t, mailtpl.EventAnnouncement, sent[before])
}

package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
	"github.com/oksasatya/clubevents/pkg/sanitize"
)

const defaultSearchLimit = 20

type EventService struct {
	Events        repo.EventRepository
	Clubs         repo.ClubRepository
	Registrations repo.RegistrationRepository
	Index         EventIndex
	Images        ImageStore
	Access        *Access
	Notifier      Notifier
	Branding      mailtpl.Branding
	Logger        *logrus.Logger
}

func NewEventService(events repo.EventRepository, clubs repo.ClubRepository, regs repo.RegistrationRepository, logger *logrus.Logger) *EventService {
	return &EventService{
		Events:        events,
		Clubs:         clubs,
		Registrations: regs,
		Access:        NewAccess(nil),
		Logger:        logger,
	}
}

type EventInput struct {
	ClubID               string
	Title                string
	Description          string
	Date                 time.Time
	Time                 string
	Location             string
	Category             string
	MaxParticipants      int
	RegistrationFee      float64
	RegistrationDeadline *time.Time
	Requirements         string
	Organizer            string
	ImageURL             string
}

// CreateEvent adds an event to a club administered by actor. The club
// defaults to actor's own club.
func (s *EventService) CreateEvent(ctx context.Context, actor *entity.User, in EventInput) (*entity.Event, error) {
	if err := s.Access.Authorize(actor, ActionEventCreate); err != nil {
		return nil, err
	}
	e := &entity.Event{
		ClubID:          strings.TrimSpace(in.ClubID),
		Title:           sanitize.Text(in.Title),
		Description:     sanitize.HTML(in.Description),
		Date:            in.Date,
		Time:            sanitize.Text(in.Time),
		Location:        sanitize.Text(in.Location),
		Category:        sanitize.Text(in.Category),
		MaxParticipants: in.MaxParticipants,
		RegistrationFee: in.RegistrationFee,
		Requirements:    sanitize.HTML(in.Requirements),
		Organizer:       sanitize.Text(in.Organizer),
		ImageURL:        strings.TrimSpace(in.ImageURL),
		CreatedBy:       actor.ID,
		Status:          entity.EventUpcoming,
	}
	if e.ClubID == "" && actor.ClubID != nil {
		e.ClubID = *actor.ClubID
	}
	if e.Title == "" || e.Description == "" || e.Date.IsZero() || e.Time == "" || e.Location == "" || e.Category == "" {
		return nil, newError(ErrValidation, "title, description, date, time, location and category are required")
	}
	if e.MaxParticipants < 1 {
		return nil, newError(ErrValidation, "maxParticipants must be at least 1")
	}
	if e.RegistrationFee < 0 {
		return nil, newError(ErrValidation, "registrationFee cannot be negative")
	}
	e.RegistrationDeadline = e.Date
	if in.RegistrationDeadline != nil && !in.RegistrationDeadline.IsZero() {
		e.RegistrationDeadline = *in.RegistrationDeadline
	}
	if e.ClubID == "" {
		return nil, newError(ErrValidation, "clubId is required")
	}
	if !validID(e.ClubID) {
		return nil, newError(ErrValidation, "invalid club id")
	}

	club, err := s.Clubs.GetByID(ctx, e.ClubID)
	if err != nil {
		return nil, storeError(err, "club")
	}
	if err := RequireClubOwnership(actor, club); err != nil {
		return nil, err
	}
	if e.Organizer == "" {
		e.Organizer = club.Name
	}

	if err := s.Events.Create(ctx, e); err != nil {
		return nil, storeError(err, "event")
	}
	s.index(ctx, e)
	return e, nil
}

// ownedEvent loads event id and checks, against live data, that actor may
// perform action on it as the admin of its club.
func (s *EventService) ownedEvent(ctx context.Context, actor *entity.User, id string, action Action) (*entity.Event, *entity.Club, error) {
	if err := s.Access.Authorize(actor, action); err != nil {
		return nil, nil, err
	}
	if !validID(id) {
		return nil, nil, newError(ErrValidation, "invalid event id")
	}
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, "event")
	}
	club, err := s.Clubs.GetByID(ctx, e.ClubID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, storeError(err, "club")
	}
	if err := RequireClubOwnership(actor, club); err != nil {
		return nil, nil, err
	}
	return e, club, nil
}

type EventPatch struct {
	Title                *string
	Description          *string
	Date                 *time.Time
	Time                 *string
	Location             *string
	Category             *string
	MaxParticipants      *int
	RegistrationFee      *float64
	RegistrationDeadline *time.Time
	Requirements         *string
	Organizer            *string
	ImageURL             *string
	Status               *string
}

func (s *EventService) UpdateEvent(ctx context.Context, actor *entity.User, id string, p EventPatch) (*entity.Event, error) {
	e, _, err := s.ownedEvent(ctx, actor, id, ActionEventUpdate)
	if err != nil {
		return nil, err
	}
	required := func(dst *string, v *string, clean func(string) string, field string) error {
		if v == nil {
			return nil
		}
		if *dst = clean(*v); *dst == "" {
			return newError(ErrValidation, field+" cannot be empty")
		}
		return nil
	}
	for _, f := range []struct {
		dst   *string
		v     *string
		clean func(string) string
		name  string
	}{
		{&e.Title, p.Title, sanitize.Text, "title"},
		{&e.Description, p.Description, sanitize.HTML, "description"},
		{&e.Time, p.Time, sanitize.Text, "time"},
		{&e.Location, p.Location, sanitize.Text, "location"},
		{&e.Category, p.Category, sanitize.Text, "category"},
		{&e.Organizer, p.Organizer, sanitize.Text, "organizer"},
	} {
		if err := required(f.dst, f.v, f.clean, f.name); err != nil {
			return nil, err
		}
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			return nil, newError(ErrValidation, "date cannot be empty")
		}
		e.Date = *p.Date
	}
	if p.RegistrationDeadline != nil && !p.RegistrationDeadline.IsZero() {
		e.RegistrationDeadline = *p.RegistrationDeadline
	}
	if p.Requirements != nil {
		e.Requirements = sanitize.HTML(*p.Requirements)
	}
	if p.ImageURL != nil {
		e.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.MaxParticipants != nil {
		if *p.MaxParticipants < 1 {
			return nil, newError(ErrValidation, "maxParticipants must be at least 1")
		}
		e.MaxParticipants = *p.MaxParticipants
	}
	if p.RegistrationFee != nil {
		if *p.RegistrationFee < 0 {
			return nil, newError(ErrValidation, "registrationFee cannot be negative")
		}
		e.RegistrationFee = *p.RegistrationFee
	}
	if p.Status != nil {
		st := entity.EventStatus(*p.Status)
		if !st.Valid() {
			return nil, newError(ErrValidation, "status must be upcoming, ongoing, completed or cancelled")
		}
		e.Status = st
	}

	if err := s.Events.Update(ctx, e); err != nil {
		if errors.Is(err, repo.ErrCapacityBelowCount) {
			return nil, newError(ErrValidation, "maxParticipants cannot be lower than the current number of participants")
		}
		return nil, storeError(err, "event")
	}
	fresh, err := s.Events.GetByID(ctx, e.ID)
	if err != nil {
		return nil, storeError(err, "event")
	}
	s.index(ctx, fresh)
	return fresh, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor *entity.User, id string) error {
	e, _, err := s.ownedEvent(ctx, actor, id, ActionEventDelete)
	if err != nil {
		return err
	}
	if err := s.Events.Delete(ctx, e.ID); err != nil {
		return storeError(err, "event")
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, e.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("remove event from search index failed")
		}
	}
	return nil
}

// ListEvents returns all events, soonest first.
func (s *EventService) ListEvents(ctx context.Context) ([]entity.Event, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		return nil, storeError(err, "event")
	}
	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, newError(ErrValidation, "invalid event id")
	}
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "event")
	}
	return e, nil
}

// ListMyEvents returns the events of the club actor administers.
func (s *EventService) ListMyEvents(ctx context.Context, actor *entity.User) ([]entity.Event, error) {
	if err := s.Access.Authorize(actor, ActionEventListOwn); err != nil {
		return nil, err
	}
	if actor.ClubID == nil || *actor.ClubID == "" {
		return []entity.Event{}, nil
	}
	events, err := s.Events.ListByClub(ctx, *actor.ClubID)
	if err != nil {
		return nil, storeError(err, "event")
	}
	return events, nil
}

// SearchEvents matches q against titles, descriptions, categories and
// locations. The search index is used when configured; the store otherwise,
// or when the index fails.
func (s *EventService) SearchEvents(ctx context.Context, q string, limit int) ([]entity.Event, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, newError(ErrValidation, "query is required")
	}
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, limit)
		if err == nil {
			out := make([]entity.Event, 0, len(ids))
			for _, id := range ids {
				e, err := s.Events.GetByID(ctx, id)
				if errors.Is(err, repo.ErrNotFound) {
					continue
				}
				if err != nil {
					return nil, storeError(err, "event")
				}
				out = append(out, *e)
			}
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("event index search failed, falling back to store")
		}
	}
	events, err := s.Events.Search(ctx, q, limit)
	if err != nil {
		return nil, storeError(err, "event")
	}
	return events, nil
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadImage stores an event image and points the event at it.
func (s *EventService) UploadImage(ctx context.Context, actor *entity.User, id, contentType string, r io.Reader) (*entity.Event, error) {
	e, _, err := s.ownedEvent(ctx, actor, id, ActionEventUploadImage)
	if err != nil {
		return nil, err
	}
	ext, ok := imageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, newError(ErrValidation, "image must be jpeg, png, gif or webp")
	}
	if s.Images == nil {
		return nil, internalError("image storage is not configured", nil)
	}
	url, err := s.Images.Upload(ctx, path.Join("events", e.ID, uuid.NewString()+ext), contentType, r)
	if err != nil {
		return nil, internalError("upload image", err)
	}
	if err := s.Events.SetImage(ctx, e.ID, url); err != nil {
		return nil, storeError(err, "event")
	}
	e.ImageURL = url
	return e, nil
}

// ListEventRegistrations returns the registrations of an event owned by actor's club.
func (s *EventService) ListEventRegistrations(ctx context.Context, actor *entity.User, id string) ([]entity.Registration, error) {
	e, _, err := s.ownedEvent(ctx, actor, id, ActionEventListRegistrations)
	if err != nil {
		return nil, err
	}
	regs, err := s.Registrations.ListByEvent(ctx, e.ID)
	if err != nil {
		return nil, storeError(err, "registration")
	}
	return regs, nil
}

// Announce queues an email to every active registrant and returns how many were queued.
func (s *EventService) Announce(ctx context.Context, actor *entity.User, id, subject, message string) (int, error) {
	e, club, err := s.ownedEvent(ctx, actor, id, ActionEventAnnounce)
	if err != nil {
		return 0, err
	}
	subject = sanitize.Text(subject)
	message = sanitize.Text(message)
	if subject == "" || message == "" {
		return 0, newError(ErrValidation, "subject and message are required")
	}
	if s.Notifier == nil {
		return 0, nil
	}
	regs, err := s.Registrations.ListByEvent(ctx, e.ID)
	if err != nil {
		return 0, storeError(err, "registration")
	}
	queued := 0
	for _, r := range regs {
		if !r.Active() {
			continue
		}
		err := s.Notifier.Notify(ctx, Notification{
			To:       r.Email,
			Template: mailtpl.EventAnnouncement,
			Data: mailtpl.NewData(s.Branding, mailtpl.EventAnnouncement, r.Name, r.Email,
				mailtpl.WithEvent(e.Title, e.Date, e.Time, e.Location),
				mailtpl.WithClub(club.Name),
				mailtpl.WithMessage(subject, message),
			),
		})
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithFields(logrus.Fields{"event_id": e.ID, "queued": queued}).Warn("announcement stopped")
			}
			return queued, internalError("queue announcement", err)
		}
		queued++
	}
	return queued, nil
}

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, e); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event_id", e.ID).Warn("index event failed")
	}
}

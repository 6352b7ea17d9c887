package memory

import (
	"context"
	"strings"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

type EventRepository struct {
	s *Store
}

var _ repo.EventRepository = (*EventRepository)(nil)

func (r *EventRepository) Create(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clubs[e.ClubID]; !ok {
		return repo.ErrNotFound
	}
	e.ID = newID(e.ID)
	if _, ok := r.s.evts[e.ID]; ok {
		return repo.ErrDuplicate
	}
	if e.Status == "" {
		e.Status = entity.EventUpcoming
	}
	e.CurrentParticipants = 0
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.evts[e.ID] = &eventRec{seq: r.s.nextSeq(), e: *e}
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	er, ok := r.s.evts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	e := er.e
	return &e, nil
}

func (r *EventRepository) List(_ context.Context) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recs := make([]*eventRec, 0, len(r.s.evts))
	for _, er := range r.s.evts {
		recs = append(recs, er)
	}
	return sortEvents(recs), nil
}

func (r *EventRepository) ListByClub(_ context.Context, clubID string) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recs []*eventRec
	for _, er := range r.s.evts {
		if er.e.ClubID == clubID {
			recs = append(recs, er)
		}
	}
	return sortEvents(recs), nil
}

func (r *EventRepository) Search(_ context.Context, q string, limit int) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q = strings.ToLower(strings.TrimSpace(q))
	var recs []*eventRec
	for _, er := range r.s.evts {
		hay := strings.ToLower(er.e.Title + "\n" + er.e.Description + "\n" + er.e.Category + "\n" + er.e.Location)
		if strings.Contains(hay, q) {
			recs = append(recs, er)
		}
	}
	out := sortEvents(recs)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *EventRepository) Update(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	er, ok := r.s.evts[e.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if e.MaxParticipants < er.e.CurrentParticipants {
		return repo.ErrCapacityBelowCount
	}
	cur := &er.e
	cur.Title = e.Title
	cur.Description = e.Description
	cur.Date = e.Date
	cur.Time = e.Time
	cur.Location = e.Location
	cur.Category = e.Category
	cur.MaxParticipants = e.MaxParticipants
	cur.RegistrationFee = e.RegistrationFee
	cur.RegistrationDeadline = e.RegistrationDeadline
	cur.Requirements = e.Requirements
	cur.Organizer = e.Organizer
	cur.ImageURL = e.ImageURL
	cur.Status = e.Status
	cur.UpdatedAt = r.s.now()
	*e = *cur
	return nil
}

func (r *EventRepository) SetImage(_ context.Context, id, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	er, ok := r.s.evts[id]
	if !ok {
		return repo.ErrNotFound
	}
	er.e.ImageURL = url
	er.e.UpdatedAt = r.s.now()
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.evts[id]; !ok {
		return repo.ErrNotFound
	}
	r.s.deleteEvent(id)
	return nil
}

func (r *EventRepository) RecountParticipants(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	er, ok := r.s.evts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	n := 0
	for _, rr := range r.s.regs {
		if rr.r.EventID == id && rr.r.Active() {
			n++
		}
	}
	er.e.CurrentParticipants = min(n, er.e.MaxParticipants)
	er.e.UpdatedAt = r.s.now()
	e := er.e
	return &e, nil
}

// SetParticipants overwrites the stored count. It exists so tests can
// reproduce drift between the counter and the registrations.
func (r *EventRepository) SetParticipants(id string, n int) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if er, ok := r.s.evts[id]; ok {
		er.e.CurrentParticipants = n
	}
}

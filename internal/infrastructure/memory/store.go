// Package memory keeps every repository in process memory behind a single
// mutex. Each method is one atomic unit of work, which gives the same
// guarantees as the postgres transactions for a single-process deployment.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

type userRec struct {
	seq int64
	u   entity.User
}

type clubRec struct {
	seq int64
	c   entity.Club
}

type eventRec struct {
	seq int64
	e   entity.Event
}

type regRec struct {
	seq int64
	r   entity.Registration
}

// Store is the shared state behind the memory repositories.
type Store struct {
	mu    sync.Mutex
	seq   int64
	now   func() time.Time
	users map[string]*userRec
	clubs map[string]*clubRec
	evts  map[string]*eventRec
	regs  map[string]*regRec
}

func NewStore() *Store {
	return &Store{
		now:   func() time.Time { return time.Now().UTC() },
		users: make(map[string]*userRec),
		clubs: make(map[string]*clubRec),
		evts:  make(map[string]*eventRec),
		regs:  make(map[string]*regRec),
	}
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) Clubs() *ClubRepository                 { return &ClubRepository{s: s} }
func (s *Store) Events() *EventRepository               { return &EventRepository{s: s} }
func (s *Store) Registrations() *RegistrationRepository { return &RegistrationRepository{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func cloneUser(u entity.User) entity.User {
	if u.ClubID != nil {
		id := *u.ClubID
		u.ClubID = &id
	}
	return u
}

// releaseSeat decrements an event's count, floored at zero. Callers hold mu.
func (s *Store) releaseSeat(eventID string) {
	if er, ok := s.evts[eventID]; ok && er.e.CurrentParticipants > 0 {
		er.e.CurrentParticipants--
		er.e.UpdatedAt = s.now()
	}
}

// deleteEvent removes an event and its registrations. Callers hold mu.
func (s *Store) deleteEvent(id string) {
	for rid, rr := range s.regs {
		if rr.r.EventID == id {
			delete(s.regs, rid)
		}
	}
	delete(s.evts, id)
}

func sortEvents(recs []*eventRec) []entity.Event {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].e.Date.Equal(recs[j].e.Date) {
			return recs[i].e.Date.Before(recs[j].e.Date)
		}
		return recs[i].seq < recs[j].seq
	})
	out := make([]entity.Event, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.e)
	}
	return out
}

package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

type RegistrationRepository struct {
	s *Store
}

var _ repo.RegistrationRepository = (*RegistrationRepository)(nil)

func (r *RegistrationRepository) CreateReservingSeat(_ context.Context, reg *entity.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	er, ok := r.s.evts[reg.EventID]
	if !ok {
		return repo.ErrNotFound
	}
	if _, ok := r.s.users[reg.UserID]; !ok {
		return repo.ErrNotFound
	}
	if er.e.CurrentParticipants >= er.e.MaxParticipants {
		return repo.ErrCapacityReached
	}
	for _, rr := range r.s.regs {
		if rr.r.EventID == reg.EventID && rr.r.UserID == reg.UserID {
			return repo.ErrDuplicate
		}
	}
	reg.ID = newID(reg.ID)
	if _, ok := r.s.regs[reg.ID]; ok {
		return repo.ErrDuplicate
	}
	now := r.s.now()
	if reg.RegistrationDate.IsZero() {
		reg.RegistrationDate = now
	}
	reg.CreatedAt, reg.UpdatedAt = now, now
	er.e.CurrentParticipants++
	er.e.UpdatedAt = now
	r.s.regs[reg.ID] = &regRec{seq: r.s.nextSeq(), r: *reg}
	return nil
}

func (r *RegistrationRepository) CancelReleasingSeat(_ context.Context, registrationID, userID string) (*entity.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rr, ok := r.s.regs[registrationID]
	if !ok || rr.r.UserID != userID || !rr.r.Active() {
		return nil, repo.ErrNotFound
	}
	rr.r.Status = entity.RegistrationCancelled
	rr.r.UpdatedAt = r.s.now()
	r.s.releaseSeat(rr.r.EventID)
	reg := rr.r
	return &reg, nil
}

func (r *RegistrationRepository) GetByID(_ context.Context, id string) (*entity.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rr, ok := r.s.regs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	reg := rr.r
	return &reg, nil
}

// ListByUser returns the user's registrations, newest first.
func (r *RegistrationRepository) ListByUser(_ context.Context, userID string) ([]entity.RegistrationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recs []*regRec
	for _, rr := range r.s.regs {
		if rr.r.UserID == userID {
			recs = append(recs, rr)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]entity.RegistrationView, 0, len(recs))
	for _, rr := range recs {
		v := entity.RegistrationView{Registration: rr.r}
		if er, ok := r.s.evts[rr.r.EventID]; ok {
			v.EventName = er.e.Title
			v.EventDate = er.e.Date
			v.EventTime = er.e.Time
			v.EventLocation = er.e.Location
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *RegistrationRepository) ListByEvent(_ context.Context, eventID string) ([]entity.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recs []*regRec
	for _, rr := range r.s.regs {
		if rr.r.EventID == eventID {
			recs = append(recs, rr)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]entity.Registration, 0, len(recs))
	for _, rr := range recs {
		out = append(out, rr.r)
	}
	return out, nil
}

func (r *RegistrationRepository) CountActiveByEvent(_ context.Context, eventID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, rr := range r.s.regs {
		if rr.r.EventID == eventID && rr.r.Active() {
			n++
		}
	}
	return n, nil
}

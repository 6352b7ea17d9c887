package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

type ClubRepository struct {
	s *Store
}

var _ repo.ClubRepository = (*ClubRepository)(nil)

func (r *ClubRepository) conflicts(c *entity.Club) bool {
	for id, cr := range r.s.clubs {
		if id == c.ID {
			continue
		}
		if cr.c.Name == c.Name || cr.c.Email == c.Email {
			return true
		}
	}
	return false
}

func (r *ClubRepository) Create(_ context.Context, c *entity.Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.Email = entity.NormalizeEmail(c.Email)
	c.ID = newID(c.ID)
	if _, ok := r.s.clubs[c.ID]; ok || r.conflicts(c) {
		return repo.ErrDuplicate
	}
	if c.AdminID != "" {
		if _, ok := r.s.users[c.AdminID]; !ok {
			return repo.ErrNotFound
		}
	}
	if c.Status == "" {
		c.Status = entity.ClubPending
	}
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.clubs[c.ID] = &clubRec{seq: r.s.nextSeq(), c: *c}
	return nil
}

func (r *ClubRepository) GetByID(_ context.Context, id string) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cr, ok := r.s.clubs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := cr.c
	return &c, nil
}

// List returns clubs newest first.
func (r *ClubRepository) List(_ context.Context) ([]entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recs := make([]*clubRec, 0, len(r.s.clubs))
	for _, cr := range r.s.clubs {
		recs = append(recs, cr)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]entity.Club, 0, len(recs))
	for _, cr := range recs {
		out = append(out, cr.c)
	}
	return out, nil
}

func (r *ClubRepository) Update(_ context.Context, c *entity.Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cr, ok := r.s.clubs[c.ID]
	if !ok {
		return repo.ErrNotFound
	}
	probe := cr.c
	probe.Name = c.Name
	if r.conflicts(&probe) {
		return repo.ErrDuplicate
	}
	cr.c.Name = c.Name
	cr.c.Description = c.Description
	cr.c.Category = c.Category
	cr.c.Status = c.Status
	cr.c.UpdatedAt = r.s.now()
	*c = cr.c
	return nil
}

// Delete removes the club with its events and their registrations.
func (r *ClubRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clubs[id]; !ok {
		return repo.ErrNotFound
	}
	for eid, er := range r.s.evts {
		if er.e.ClubID == id {
			r.s.deleteEvent(eid)
		}
	}
	for _, ur := range r.s.users {
		if ur.u.ClubID != nil && *ur.u.ClubID == id {
			ur.u.ClubID = nil
		}
	}
	delete(r.s.clubs, id)
	return nil
}

package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

var _ repo.UserRepository = (*UserRepository)(nil)

// emailTaken reports whether another user holds email. Callers hold mu.
func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, ur := range r.s.users {
		if id != exceptID && ur.u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = entity.NormalizeEmail(u.Email)
	if r.emailTaken(u.Email, "") {
		return repo.ErrDuplicate
	}
	u.ID = newID(u.ID)
	if _, ok := r.s.users[u.ID]; ok {
		return repo.ErrDuplicate
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = &userRec{seq: r.s.nextSeq(), u: cloneUser(*u)}
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ur, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u := cloneUser(ur.u)
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = entity.NormalizeEmail(email)
	for _, ur := range r.s.users {
		if ur.u.Email == email {
			u := cloneUser(ur.u)
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) List(_ context.Context, excludeRole entity.Role) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recs := make([]*userRec, 0, len(r.s.users))
	for _, ur := range r.s.users {
		if excludeRole != "" && ur.u.Role == excludeRole {
			continue
		}
		recs = append(recs, ur)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]entity.User, 0, len(recs))
	for _, ur := range recs {
		out = append(out, cloneUser(ur.u))
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ur, ok := r.s.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	email := entity.NormalizeEmail(u.Email)
	if r.emailTaken(email, u.ID) {
		return repo.ErrDuplicate
	}
	ur.u.Name = u.Name
	ur.u.Email = email
	ur.u.Phone = u.Phone
	ur.u.Organization = u.Organization
	if u.Password != "" {
		ur.u.Password = u.Password
	}
	ur.u.UpdatedAt = r.s.now()
	*u = cloneUser(ur.u)
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role entity.Role) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ur, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	ur.u.Role = role
	ur.u.UpdatedAt = r.s.now()
	u := cloneUser(ur.u)
	return &u, nil
}

func (r *UserRepository) SetClubID(_ context.Context, id string, clubID *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ur, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	if clubID != nil {
		if _, ok := r.s.clubs[*clubID]; !ok {
			return repo.ErrNotFound
		}
		v := *clubID
		clubID = &v
	}
	ur.u.ClubID = clubID
	ur.u.UpdatedAt = r.s.now()
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repo.ErrNotFound
	}
	for rid, rr := range r.s.regs {
		if rr.r.UserID != id {
			continue
		}
		if rr.r.Active() {
			r.s.releaseSeat(rr.r.EventID)
		}
		delete(r.s.regs, rid)
	}
	for _, cr := range r.s.clubs {
		if cr.c.AdminID == id {
			cr.c.AdminID = ""
		}
	}
	for _, er := range r.s.evts {
		if er.e.CreatedBy == id {
			er.e.CreatedBy = ""
		}
	}
	delete(r.s.users, id)
	return nil
}

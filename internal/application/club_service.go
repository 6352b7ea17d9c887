package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	"github.com/oksasatya/clubevents/pkg/helpers"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
	"github.com/oksasatya/clubevents/pkg/sanitize"
)

type ClubService struct {
	Clubs    repo.ClubRepository
	Users    repo.UserRepository
	Access   *Access
	Notifier Notifier
	Branding mailtpl.Branding
	Logger   *logrus.Logger
}

func NewClubService(clubs repo.ClubRepository, users repo.UserRepository, logger *logrus.Logger) *ClubService {
	return &ClubService{Clubs: clubs, Users: users, Access: NewAccess(nil), Logger: logger}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *ClubService) withAdmin(ctx context.Context, c entity.Club, cache map[string]*entity.UserSummary) (entity.ClubWithAdmin, error) {
	out := entity.ClubWithAdmin{Club: c}
	if c.AdminID == "" {
		return out, nil
	}
	if sum, ok := cache[c.AdminID]; ok {
		out.Admin = sum
		return out, nil
	}
	u, err := s.Users.GetByID(ctx, c.AdminID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
	case err != nil:
		return out, storeError(err, "club admin")
	default:
		sum := u.Summary()
		out.Admin = &sum
	}
	if cache != nil {
		cache[c.AdminID] = out.Admin
	}
	return out, nil
}

// ListClubs returns every club with its admin, newest first.
func (s *ClubService) ListClubs(ctx context.Context) ([]entity.ClubWithAdmin, error) {
	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, storeError(err, "club")
	}
	cache := make(map[string]*entity.UserSummary)
	out := make([]entity.ClubWithAdmin, 0, len(clubs))
	for _, c := range clubs {
		cw, err := s.withAdmin(ctx, c, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, cw)
	}
	return out, nil
}

func (s *ClubService) GetClub(ctx context.Context, id string) (*entity.ClubWithAdmin, error) {
	if !validID(id) {
		return nil, newError(ErrValidation, "invalid club id")
	}
	c, err := s.Clubs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "club")
	}
	cw, err := s.withAdmin(ctx, *c, nil)
	if err != nil {
		return nil, err
	}
	return &cw, nil
}

type CreateClubInput struct {
	Name        string
	Description string
	Category    string
	Email       string
	Password    string
}

// CreateClub provisions an active club together with its clubadmin account.
func (s *ClubService) CreateClub(ctx context.Context, actor *entity.User, in CreateClubInput) (*entity.ClubWithAdmin, error) {
	if err := s.Access.Authorize(actor, ActionClubCreate); err != nil {
		return nil, err
	}
	club := &entity.Club{
		Name:        sanitize.Text(in.Name),
		Description: sanitize.HTML(in.Description),
		Category:    sanitize.Text(in.Category),
		Email:       entity.NormalizeEmail(in.Email),
		Status:      entity.ClubActive,
	}
	if club.Name == "" || club.Description == "" || club.Category == "" || club.Email == "" || in.Password == "" {
		return nil, newError(ErrValidation, "name, description, category, email and password are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, newError(ErrValidation, "password must be at least 6 characters")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("hash password", err)
	}
	admin := &entity.User{
		Name:         club.Name,
		Email:        club.Email,
		Password:     hash,
		Role:         entity.RoleClubAdmin,
		Organization: club.Name,
	}

	steps := append([]Step{createUserStep(s.Users, admin)}, clubAdminSteps(s.Users, s.Clubs, admin, club)...)
	if err := Provision(ctx, s.Logger, steps...); err != nil {
		return nil, err
	}

	notify(ctx, s.Notifier, s.Logger, Notification{
		To:       admin.Email,
		Template: mailtpl.ClubProvisioned,
		Data:     mailtpl.NewData(s.Branding, mailtpl.ClubProvisioned, admin.Name, admin.Email, mailtpl.WithClub(club.Name)),
	})
	sum := admin.Summary()
	return &entity.ClubWithAdmin{Club: *club, Admin: &sum}, nil
}

type UpdateClubInput struct {
	Name        *string
	Description *string
	Category    *string
	Status      *string
}

func (s *ClubService) UpdateClub(ctx context.Context, actor *entity.User, id string, in UpdateClubInput) (*entity.ClubWithAdmin, error) {
	if err := s.Access.Authorize(actor, ActionClubUpdate); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, newError(ErrValidation, "invalid club id")
	}
	c, err := s.Clubs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "club")
	}
	if in.Name != nil {
		if c.Name = sanitize.Text(*in.Name); c.Name == "" {
			return nil, newError(ErrValidation, "name cannot be empty")
		}
	}
	if in.Description != nil {
		if c.Description = sanitize.HTML(*in.Description); c.Description == "" {
			return nil, newError(ErrValidation, "description cannot be empty")
		}
	}
	if in.Category != nil {
		if c.Category = sanitize.Text(*in.Category); c.Category == "" {
			return nil, newError(ErrValidation, "category cannot be empty")
		}
	}
	if in.Status != nil {
		st := entity.ClubStatus(*in.Status)
		if !st.Valid() {
			return nil, newError(ErrValidation, "status must be pending, active or inactive")
		}
		c.Status = st
	}
	if err := s.Clubs.Update(ctx, c); err != nil {
		return nil, storeError(err, "club")
	}
	cw, err := s.withAdmin(ctx, *c, nil)
	if err != nil {
		return nil, err
	}
	return &cw, nil
}

// DeleteClub removes the club's admin account first and the club second.
// The club is kept when the admin cannot be removed. A club that cannot be
// removed after its admin is gone is reported as an internal error and left
// for an operator.
func (s *ClubService) DeleteClub(ctx context.Context, actor *entity.User, id string) error {
	if err := s.Access.Authorize(actor, ActionClubDelete); err != nil {
		return err
	}
	if !validID(id) {
		return newError(ErrValidation, "invalid club id")
	}
	c, err := s.Clubs.GetByID(ctx, id)
	if err != nil {
		return storeError(err, "club")
	}
	if c.AdminID != "" {
		if err := s.Users.Delete(ctx, c.AdminID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return internalError("delete club admin", err)
		}
	}
	if err := s.Clubs.Delete(ctx, c.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"club_id":  c.ID,
				"admin_id": c.AdminID,
			}).Error("club admin deleted but club delete failed; manual cleanup required")
		}
		return internalError("delete club after its admin was removed", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"club_id": c.ID, "admin_id": c.AdminID}).Info("club deleted")
	}
	return nil
}

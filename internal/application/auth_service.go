package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/domain/entity"
	repo "github.com/oksasatya/clubevents/internal/domain/repository"
	"github.com/oksasatya/clubevents/pkg/helpers"
	mailtpl "github.com/oksasatya/clubevents/pkg/mailer/templates"
	"github.com/oksasatya/clubevents/pkg/sanitize"
)

const (
	minPasswordLen      = 6
	defaultClubCategory = "General"
)

// TokenRevoker remembers logged-out token ids.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	Users    repo.UserRepository
	Clubs    repo.ClubRepository
	JWT      *helpers.JWTManager
	Revoker  TokenRevoker
	Access   *Access
	Notifier Notifier
	Branding mailtpl.Branding
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, clubs repo.ClubRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		Clubs:  clubs,
		JWT:    jwt,
		Access: NewAccess(nil),
		Logger: logger,
	}
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Phone        string
	Organization string
}

// Session is an authenticated user together with the token that proves it.
type Session struct {
	User  *entity.User
	Token helpers.IssuedToken
}

// Register creates an account. A clubadmin account also gets a pending club
// named after its organization; user, club and back-reference are created
// together or not at all.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := sanitize.Text(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, newError(ErrValidation, "name, email and password are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, newError(ErrValidation, "password must be at least 6 characters")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, newError(ErrValidation, "role must be user or clubadmin")
	}
	if role == entity.RoleSuperAdmin {
		return nil, newError(ErrValidation, "superadmin accounts are created by the seed command only")
	}
	org := sanitize.Text(in.Organization)
	if role == entity.RoleClubAdmin && org == "" {
		return nil, newError(ErrValidation, "organization is required for club admins")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("hash password", err)
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		Password:     hash,
		Role:         role,
		Phone:        sanitize.Text(in.Phone),
		Organization: org,
	}

	steps := []Step{createUserStep(s.Users, u)}
	var club *entity.Club
	if role == entity.RoleClubAdmin {
		club = &entity.Club{
			Name:        org,
			Description: org,
			Category:    defaultClubCategory,
			Email:       email,
			Status:      entity.ClubPending,
		}
		steps = append(steps, clubAdminSteps(s.Users, s.Clubs, u, club)...)
	}
	var tok helpers.IssuedToken
	steps = append(steps, Step{
		Name: "issue token",
		Do: func(context.Context) error {
			var err error
			if tok, err = s.JWT.Generate(u.ID); err != nil {
				return internalError("issue token", err)
			}
			return nil
		},
	})

	if err := Provision(ctx, s.Logger, steps...); err != nil {
		return nil, err
	}

	if club != nil {
		notify(ctx, s.Notifier, s.Logger, Notification{
			To:       u.Email,
			Template: mailtpl.ClubProvisioned,
			Data:     mailtpl.NewData(s.Branding, mailtpl.ClubProvisioned, u.Name, u.Email, mailtpl.WithClub(club.Name)),
		})
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	}
	return &Session{User: u, Token: tok}, nil
}

func createUserStep(users repo.UserRepository, u *entity.User) Step {
	return Step{
		Name: "create user",
		Do: func(ctx context.Context) error {
			if err := users.Create(ctx, u); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return newError(ErrConflict, "email already registered")
				}
				return internalError("create user", err)
			}
			return nil
		},
		Undo: func(ctx context.Context) error {
			return users.Delete(ctx, u.ID)
		},
	}
}

// clubAdminSteps creates club with admin as its owner, links the admin back
// to the club and re-reads the admin to confirm the link was persisted.
func clubAdminSteps(users repo.UserRepository, clubs repo.ClubRepository, admin *entity.User, club *entity.Club) []Step {
	return []Step{
		{
			Name: "create club",
			Do: func(ctx context.Context) error {
				club.AdminID = admin.ID
				if err := clubs.Create(ctx, club); err != nil {
					if errors.Is(err, repo.ErrDuplicate) {
						return newError(ErrConflict, "club name or email already registered")
					}
					return internalError("create club", err)
				}
				return nil
			},
			Undo: func(ctx context.Context) error {
				return clubs.Delete(ctx, club.ID)
			},
		},
		{
			Name: "link club",
			Do: func(ctx context.Context) error {
				id := club.ID
				if err := users.SetClubID(ctx, admin.ID, &id); err != nil {
					return internalError("link club to admin", err)
				}
				return nil
			},
		},
		{
			Name: "verify club link",
			Do: func(ctx context.Context) error {
				fresh, err := users.GetByID(ctx, admin.ID)
				if err != nil {
					return internalError("re-read club admin", err)
				}
				if fresh.ClubID == nil || *fresh.ClubID != club.ID {
					return internalError("club back-reference missing", nil)
				}
				*admin = *fresh
				return nil
			},
		},
	}
}

var dummyHash = sync.OnceValue(func() string {
	h, _ := helpers.HashPassword("not-a-real-password")
	return h
})

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := newError(ErrUnauthenticated, "invalid credentials")
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareHashAndPassword(dummyHash(), password)
			return nil, invalid
		}
		return nil, internalError("load user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, invalid
	}
	tok, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, internalError("issue token", err)
	}
	return &Session{User: u, Token: tok}, nil
}

// Authenticate resolves a token to the live user record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, *helpers.Claims, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		if errors.Is(err, helpers.ErrMissingToken) {
			return nil, nil, newError(ErrUnauthenticated, "please login to access this resource")
		}
		return nil, nil, newError(ErrUnauthenticated, "invalid or expired token")
	}
	if s.Revoker != nil {
		revoked, err := s.Revoker.IsRevoked(ctx, claims.ID)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("token revocation check failed")
		}
		if revoked {
			return nil, nil, newError(ErrUnauthenticated, "token has been revoked")
		}
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, newError(ErrUnauthenticated, "user not found")
		}
		return nil, nil, internalError("load user", err)
	}
	return u, claims, nil
}

// Logout revokes the token until its natural expiry when a revoker is configured.
func (s *AuthService) Logout(ctx context.Context, claims *helpers.Claims) error {
	if s.Revoker == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.Revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return internalError("revoke token", err)
	}
	return nil
}

// Me returns the stored record of the authenticated user.
func (s *AuthService) Me(ctx context.Context, actor *entity.User) (*entity.User, error) {
	if actor == nil {
		return nil, newError(ErrUnauthenticated, "authentication required")
	}
	u, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return u, nil
}

type ProfileInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Organization *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor *entity.User, in ProfileInput) (*entity.User, error) {
	if err := s.Access.Authorize(actor, ActionProfileUpdate); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	if in.Name != nil {
		if u.Name = sanitize.Text(*in.Name); u.Name == "" {
			return nil, newError(ErrValidation, "name cannot be empty")
		}
	}
	if in.Email != nil {
		if u.Email = entity.NormalizeEmail(*in.Email); u.Email == "" || !strings.Contains(u.Email, "@") {
			return nil, newError(ErrValidation, "a valid email is required")
		}
	}
	if in.Phone != nil {
		u.Phone = sanitize.Text(*in.Phone)
	}
	if in.Organization != nil {
		u.Organization = sanitize.Text(*in.Organization)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, newError(ErrConflict, "email already registered")
		}
		return nil, storeError(err, "user")
	}
	return u, nil
}

package entity

import (
	"strings"
	"time"
)

// Role is the authorization role carried on every user record.
type Role string

const (
	RoleUser       Role = "user"
	RoleClubAdmin  Role = "clubadmin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole returns the role named by s. An empty string means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, true
	case RoleClubAdmin:
		return RoleClubAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	}
	return "", false
}

// User is the aggregate root for the credential store.
// Password holds a bcrypt hash and never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Role         Role      `json:"role"`
	ClubID       *string   `json:"clubId"`
	Phone        string    `json:"phone"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public slice of a user embedded in other resources.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

package entity

import "time"

type ClubStatus string

const (
	ClubPending  ClubStatus = "pending"
	ClubActive   ClubStatus = "active"
	ClubInactive ClubStatus = "inactive"
)

func (s ClubStatus) Valid() bool {
	switch s {
	case ClubPending, ClubActive, ClubInactive:
		return true
	}
	return false
}

// Club is owned by exactly one clubadmin user (AdminID).
type Club struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	AdminID     string     `json:"adminId"`
	Email       string     `json:"email"`
	Status      ClubStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ClubWithAdmin is the read model returned by club listings.
type ClubWithAdmin struct {
	Club
	Admin *UserSummary `json:"admin"`
}

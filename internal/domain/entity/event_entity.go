package entity

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event belongs to exactly one club.
// Invariant: 0 <= CurrentParticipants <= MaxParticipants.
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Date                 time.Time   `json:"date"`
	Time                 string      `json:"time"`
	Location             string      `json:"location"`
	Category             string      `json:"category"`
	MaxParticipants      int         `json:"maxParticipants"`
	CurrentParticipants  int         `json:"currentParticipants"`
	RegistrationFee      float64     `json:"registrationFee"`
	RegistrationDeadline time.Time   `json:"registrationDeadline"`
	Requirements         string      `json:"requirements"`
	Organizer            string      `json:"organizer"`
	ImageURL             string      `json:"image"`
	ClubID               string      `json:"clubId"`
	CreatedBy            string      `json:"createdBy"`
	Status               EventStatus `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

func (e *Event) SeatsLeft() int {
	if e.IsFull() {
		return 0
	}
	return e.MaxParticipants - e.CurrentParticipants
}

// RegistrationClosed reports whether now is past the registration deadline.
func (e *Event) RegistrationClosed(now time.Time) bool {
	return now.After(e.RegistrationDeadline)
}

package entity

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Registration is one user's enrollment in one event. (EventID, UserID) is unique.
type Registration struct {
	ID               string             `json:"id"`
	EventID          string             `json:"eventId"`
	UserID           string             `json:"userId"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Organization     string             `json:"organization"`
	Requirements     string             `json:"requirements"`
	Status           RegistrationStatus `json:"status"`
	PaymentStatus    PaymentStatus      `json:"paymentStatus"`
	PaymentAmount    float64            `json:"paymentAmount"`
	RegistrationDate time.Time          `json:"registrationDate"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func (r *Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

// RegistrationView joins a registration with its event's display fields.
type RegistrationView struct {
	Registration
	EventName     string    `json:"eventName"`
	EventDate     time.Time `json:"eventDate"`
	EventTime     string    `json:"eventTime"`
	EventLocation string    `json:"eventLocation"`
}

package templates

import (
	"strings"
	"time"
)

// Branding carries the sender identity rendered into every template.
type Branding struct {
	AppName     string
	CompanyName string
	LogoURL     string
	SupportURL  string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithEvent(title string, date time.Time, at, location string) Option {
	return func(d *EmailData) {
		d.EventName = title
		if !date.IsZero() {
			d.EventDate = date.Format("Monday, 02 January 2006")
		}
		d.EventTime = at
		d.EventLocation = location
	}
}

func WithAmount(v float64) Option { return func(d *EmailData) { d.Amount = v } }

func WithClub(name string) Option { return func(d *EmailData) { d.ClubName = name } }

func WithMessage(subject, message string) Option {
	return func(d *EmailData) {
		d.Subject = strings.TrimSpace(subject)
		d.Message = strings.TrimSpace(message)
	}
}

// NewBaseEmailData fills the common fields, then applies opts.
func NewBaseEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		AppName:        b.AppName,
		CompanyName:    b.CompanyName,
		LogoURL:        b.LogoURL,
		SupportURL:     b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewData(b Branding, typ, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, typ, name, email, opts...))
}

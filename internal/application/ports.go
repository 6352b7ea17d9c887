package application

import (
	"context"
	"io"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

// Notification is one templated email to one recipient.
type Notification struct {
	To       string
	Template string
	Data     map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// EventIndex is a full-text index over events. Search returns event ids, best match first.
type EventIndex interface {
	Index(ctx context.Context, e *entity.Event) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, limit int) ([]string, error)
}

type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// RegistrationObserver is told the outcome kind of every registration attempt.
type RegistrationObserver interface {
	ObserveRegistration(op string, err error)
}

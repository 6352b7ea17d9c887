package application

import (
	"errors"

	repo "github.com/oksasatya/clubevents/internal/domain/repository"
)

// Error kinds. Every error returned by a service matches exactly one of
// these with errors.Is; the HTTP layer maps them to status codes.
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrEventFull          = errors.New("event is full")
	ErrInternal           = errors.New("internal error")
)

var kinds = []error{
	ErrValidation, ErrConflict, ErrUnauthenticated, ErrForbidden,
	ErrNotFound, ErrRegistrationClosed, ErrEventFull, ErrInternal,
}

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func internalError(msg string, cause error) error {
	return &kindError{kind: ErrInternal, msg: msg, cause: cause}
}

// Kind returns the error kind err carries, ErrInternal when it carries none.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// Message is the client-facing text of err. Internal failures never expose their cause.
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		if ke.kind == ErrInternal {
			return ke.msg
		}
		return ke.Error()
	}
	if Kind(err) == ErrInternal {
		return "internal server error"
	}
	return err.Error()
}

// storeError translates repository failures into error kinds.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return newError(ErrNotFound, what+" not found")
	case errors.Is(err, repo.ErrDuplicate):
		return newError(ErrConflict, what+" already exists")
	}
	return internalError(what+" store failure", err)
}

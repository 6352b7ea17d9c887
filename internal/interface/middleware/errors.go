package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/pkg/response"
)

// ExposeInternalErrors includes the cause of internal errors in responses.
// Only enabled in development.
var ExposeInternalErrors bool

var statusByKind = map[error]int{
	application.ErrValidation:         http.StatusBadRequest,
	application.ErrRegistrationClosed: http.StatusBadRequest,
	application.ErrEventFull:          http.StatusBadRequest,
	application.ErrUnauthenticated:    http.StatusUnauthorized,
	application.ErrForbidden:          http.StatusForbidden,
	application.ErrNotFound:           http.StatusNotFound,
	application.ErrConflict:           http.StatusBadRequest,
	application.ErrInternal:           http.StatusInternalServerError,
}

// ErrorStatus maps a service error kind to its HTTP status.
func ErrorStatus(err error) int {
	if s, ok := statusByKind[application.Kind(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// WriteError writes the error envelope for err.
func WriteError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	var detail any
	if status == http.StatusInternalServerError && ExposeInternalErrors {
		detail = err.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	response.Error[any](c, status, application.Message(err), detail)
}

func AbortWithError(c *gin.Context, err error) {
	WriteError(c, err)
	c.Abort()
}

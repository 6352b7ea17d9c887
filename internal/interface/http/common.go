package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
	"github.com/oksasatya/clubevents/pkg/validation"
)

// bindJSON decodes the body into req and writes the 400 envelope on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

var errBadDate = errors.New("expected RFC 3339 or YYYY-MM-DD")

// parseDate accepts a full timestamp or a calendar date (midnight UTC).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadDate
}

// parseOptionalDate returns nil for an absent or empty value.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badDate(c *gin.Context, field string) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{field: errBadDate.Error()})
}

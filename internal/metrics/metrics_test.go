package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubevents/internal/application"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/events/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/events/:id", "404"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/events/:id", "404")))
	assert.Positive(t, testutil.CollectAndCount(HTTPRequestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "full", Outcome(fmt.Errorf("x: %w", application.ErrEventFull)))
	assert.Equal(t, "closed", Outcome(application.ErrRegistrationClosed))
	assert.Equal(t, "conflict", Outcome(application.ErrConflict))
	assert.Equal(t, "internal", Outcome(errors.New("boom")))
}

func TestRegistrationObserver(t *testing.T) {
	before := testutil.ToFloat64(RegistrationOutcomes.WithLabelValues("register", "full"))
	RegistrationObserver{}.ObserveRegistration("register", application.ErrEventFull)
	assert.Equal(t, before+1, testutil.ToFloat64(RegistrationOutcomes.WithLabelValues("register", "full")))
}

func TestHandler(t *testing.T) {
	RegistrationObserver{}.ObserveRegistration("cancel", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "clubevents_registration_outcomes_total"))
}

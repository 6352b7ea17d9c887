// Package metrics exposes Prometheus collectors for the HTTP layer and the
// registration flow.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/clubevents/internal/application"
)

const namespace = "clubevents"

// Registry holds every collector of this package.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)

	// RegistrationOutcomes counts register and cancel attempts by result kind.
	RegistrationOutcomes = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_outcomes_total",
			Help:      "Registration attempts by operation and outcome",
		},
		[]string{"op", "outcome"}, // outcome: ok|full|closed|conflict|forbidden|not_found|validation|unauthenticated|internal
	)
)

// Init registers the Go runtime and process collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// GinMiddleware records request count and latency per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RegistrationObserver implements application.RegistrationObserver.
type RegistrationObserver struct{}

func (RegistrationObserver) ObserveRegistration(op string, err error) {
	RegistrationOutcomes.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome is the metric label for a service error.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch kind := application.Kind(err); {
	case errors.Is(kind, application.ErrEventFull):
		return "full"
	case errors.Is(kind, application.ErrRegistrationClosed):
		return "closed"
	case errors.Is(kind, application.ErrConflict):
		return "conflict"
	case errors.Is(kind, application.ErrForbidden):
		return "forbidden"
	case errors.Is(kind, application.ErrNotFound):
		return "not_found"
	case errors.Is(kind, application.ErrValidation):
		return "validation"
	case errors.Is(kind, application.ErrUnauthenticated):
		return "unauthenticated"
	}
	return "internal"
}

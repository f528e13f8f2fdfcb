// Package metrics exposes prometheus collectors for the HTTP surface and for
// the journal and operation services.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	serviceCalls    *prometheus.CounterVec
	serviceDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ledger",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		serviceCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "service_calls_total",
				Help:      "Journal and operation service calls by outcome",
			},
			[]string{"service", "operation", "outcome"},
		),
		serviceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ledger",
				Name:      "service_call_duration_seconds",
				Help:      "Duration of journal and operation service calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.serviceCalls, m.serviceDuration)
	return m
}

// GinMiddleware records one request count and latency sample per request,
// labelled with the matched route template rather than the raw path.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// observe records one service call.
func (m *Metrics) observe(service, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.serviceCalls.WithLabelValues(service, operation, Outcome(err)).Inc()
	m.serviceDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

// Outcome classifies a service error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrUnbalanced):
		return "unbalanced"
	case errors.Is(err, apperrors.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, apperrors.ErrIntegrity):
		return "integrity"
	case errors.Is(err, apperrors.ErrRateUnavailable):
		return "rate_unavailable"
	default:
		return "error"
	}
}

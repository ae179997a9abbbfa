// Package metrics exposes Prometheus counters for seat accounting and mail delivery.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration outcomes.
const (
	RegistrationCreated   = "created"
	RegistrationExhausted = "exhausted"
	RegistrationNotFound  = "not_found"
	RegistrationError     = "error"
)

// Confirmation email outcomes.
const (
	EmailSent    = "sent"
	EmailFailed  = "failed"
	EmailDropped = "dropped"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	gatherer      prometheus.Gatherer
	registrations *prometheus.CounterVec
	seatsRestored prometheus.Counter
	emails        *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests to keep
// them isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventreg_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"result"}),
		seatsRestored: f.NewCounter(prometheus.CounterOpts{
			Name: "eventreg_seats_restored_total",
			Help: "Seats returned to events by registrant deletion.",
		}),
		emails: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventreg_confirmation_emails_total",
			Help: "Confirmation emails by delivery outcome.",
		}, []string{"result"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventreg_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
}

func (m *Metrics) Registration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) SeatsRestored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.seatsRestored.Add(float64(n))
}

func (m *Metrics) ConfirmationEmail(result string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(result).Inc()
}

func (m *Metrics) Request(method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

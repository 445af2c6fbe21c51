package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
)

const namespace = "endpointauth"

// Result label values.
const (
	ResultValid        = "valid"
	ResultInvalid      = "invalid"
	ResultNotValidated = "not_validated"
	ResultError        = "error"
)

// AuthMetrics counts token generation and validation outcomes.
// It implements service.Recorder.
type AuthMetrics struct {
	Validations *prometheus.CounterVec
	Generations *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	RateLimited *prometheus.CounterVec
}

// NewAuthMetrics creates the auth metrics without registering them.
func NewAuthMetrics() *AuthMetrics {
	return &AuthMetrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "validations_total",
			Help:      "Token validations by result",
		}, []string{"result"}),

		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "generations_total",
			Help:      "Token generations by result",
		}, []string{"result"}),

		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "rejections_total",
			Help:      "Calls rejected as unauthenticated, by transport and error code",
		}, []string{"transport", "code"}),

		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "rate_limited_total",
			Help:      "Calls refused by the per-peer rejection limiter",
		}, []string{"transport"}),
	}
}

// RegisterMetrics registers the auth metrics with registry.
// Returns m for method chaining.
func (m *AuthMetrics) RegisterMetrics(registry prometheus.Registerer) *AuthMetrics {
	registry.MustRegister(
		m.Validations,
		m.Generations,
		m.Rejections,
		m.RateLimited,
	)
	return m
}

// ObserveValidation counts one validation outcome.
func (m *AuthMetrics) ObserveValidation(result domain.ValidationResult, err error) {
	label := ResultError
	if err == nil {
		switch result {
		case domain.Valid:
			label = ResultValid
		case domain.Invalid:
			label = ResultInvalid
		case domain.NotValidated:
			label = ResultNotValidated
		}
	}
	m.Validations.WithLabelValues(label).Inc()
}

// ObserveGeneration counts one generation.
func (m *AuthMetrics) ObserveGeneration(err error) {
	if err != nil {
		m.Generations.WithLabelValues(ResultError).Inc()
		return
	}
	m.Generations.WithLabelValues(ResultValid).Inc()
}

// ObserveRejection counts a call refused with Unauthenticated. code is
// the outermost domain error code, or "invalid" for a soft rejection.
func (m *AuthMetrics) ObserveRejection(transport string, err error) {
	code := domain.GetErrorCode(err)
	if code == "" || code == domain.ErrTokenRejected.Code {
		code = ResultInvalid
	}
	m.Rejections.WithLabelValues(transport, code).Inc()
}

// ObserveRateLimited counts a call refused by the rejection limiter.
func (m *AuthMetrics) ObserveRateLimited(transport string) {
	m.RateLimited.WithLabelValues(transport).Inc()
}

// NewRegistry creates a registry with the Go runtime and process
// collectors installed.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Handler returns an HTTP handler exposing registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

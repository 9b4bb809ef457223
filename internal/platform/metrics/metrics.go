package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RegistrationsTotal    prometheus.Counter
	RegistrationsFailed   *prometheus.CounterVec
	ValidationFailures    *prometheus.CounterVec
	ResendAttempts        prometheus.Counter
	ResendRejected        prometheus.Counter
	SignIns               prometheus.Counter
	SignInFailures        prometheus.Counter
	SimilaritySearches    *prometheus.CounterVec
	MatchesCreated        prometheus.Counter
	AnalyticsQueries      prometheus.Counter
	EndpointLatency       *prometheus.HistogramVec
	ProfileCreateFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_registrations_total",
			Help: "Total number of successful registrations",
		}),
		RegistrationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthire_registrations_failed_total",
			Help: "Total number of failed registrations, labeled by error code",
		}, []string{"code"}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthire_validation_failures_total",
			Help: "Total number of schema validation failures, labeled by field",
		}, []string{"field"}),
		ResendAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_resend_attempts_total",
			Help: "Total number of verification email resend attempts",
		}),
		ResendRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_resend_rejected_total",
			Help: "Total number of resend attempts rejected by the cap",
		}),
		SignIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_signins_total",
			Help: "Total number of successful sign-ins",
		}),
		SignInFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_signin_failures_total",
			Help: "Total number of failed sign-ins",
		}),
		SimilaritySearches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smarthire_similarity_searches_total",
			Help: "Total number of vector similarity searches, labeled by entity",
		}, []string{"entity"}),
		MatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_matches_created_total",
			Help: "Total number of CV/JD match records created",
		}),
		AnalyticsQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_analytics_queries_total",
			Help: "Total number of match analytics queries",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smarthire_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		ProfileCreateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smarthire_profile_create_failures_total",
			Help: "Total number of profile rows that failed to create after account creation",
		}),
	}
}

// IncrementRegistrations increments the successful registrations counter by 1.
func (m *Metrics) IncrementRegistrations() {
	if m == nil {
		return
	}
	m.RegistrationsTotal.Inc()
}

// IncrementRegistrationFailure records a failed registration with its error code.
func (m *Metrics) IncrementRegistrationFailure(code string) {
	if m == nil {
		return
	}
	m.RegistrationsFailed.WithLabelValues(code).Inc()
}

// IncrementValidationFailure records a schema validation failure per field.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(field).Inc()
}

// IncrementResendAttempts counts a verification email resend attempt.
func (m *Metrics) IncrementResendAttempts() {
	if m == nil {
		return
	}
	m.ResendAttempts.Inc()
}

// IncrementResendRejected counts a resend attempt rejected by the cap.
func (m *Metrics) IncrementResendRejected() {
	if m == nil {
		return
	}
	m.ResendRejected.Inc()
}

// IncrementSignIns counts a successful sign-in.
func (m *Metrics) IncrementSignIns() {
	if m == nil {
		return
	}
	m.SignIns.Inc()
}

// IncrementSignInFailures counts a failed sign-in.
func (m *Metrics) IncrementSignInFailures() {
	if m == nil {
		return
	}
	m.SignInFailures.Inc()
}

// IncrementSimilaritySearches counts a vector similarity search per entity.
func (m *Metrics) IncrementSimilaritySearches(entity string) {
	if m == nil {
		return
	}
	m.SimilaritySearches.WithLabelValues(entity).Inc()
}

// IncrementMatchesCreated counts a stored match record.
func (m *Metrics) IncrementMatchesCreated() {
	if m == nil {
		return
	}
	m.MatchesCreated.Inc()
}

// IncrementAnalyticsQueries counts a match analytics aggregation.
func (m *Metrics) IncrementAnalyticsQueries() {
	if m == nil {
		return
	}
	m.AnalyticsQueries.Inc()
}

// IncrementProfileCreateFailures counts a profile row that failed to create.
func (m *Metrics) IncrementProfileCreateFailures() {
	if m == nil {
		return
	}
	m.ProfileCreateFailures.Inc()
}

// ObserveEndpointLatency records the latency of a single endpoint call.
func (m *Metrics) ObserveEndpointLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(seconds)
}

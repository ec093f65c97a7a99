package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"net/http"
)

var (
	// HTTP request metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "service"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	// Registration metrics
	patientsRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "patients_registered_total",
			Help: "Total number of patients registered",
		},
	)

	// Encounter workflow metrics
	encountersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encounters_created_total",
			Help: "Total number of encounters opened",
		},
		[]string{"hospital", "type"},
	)

	encounterTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encounter_transitions_total",
			Help: "Total number of encounter workflow transitions",
		},
		[]string{"from", "to"},
	)

	transitionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "encounter_transitions_rejected_total",
			Help: "Total number of rejected encounter transitions",
		},
		[]string{"from", "to"},
	)

	// Claims metrics
	claimsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_submitted_total",
			Help: "Total number of claims bridged to insurers",
		},
		[]string{"provider"},
	)

	claimBridgeOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claim_bridge_outcomes_total",
			Help: "Outcomes of scheduled claim bridge transitions",
		},
		[]string{"outcome"},
	)

	// Booking metrics
	appointmentsBookedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Total number of appointments booked",
		},
		[]string{"hospital"},
	)

	// Insight summarizer metrics
	insightRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_requests_total",
			Help: "Total number of insight summarizer calls",
		},
		[]string{"operation", "outcome"},
	)

	// Workflow anomaly metrics
	suspiciousTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suspicious_transitions_total",
			Help: "Status changes that walked against the workflow order",
		},
		[]string{"entity"},
	)

	registerOnce sync.Once
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	serviceName string
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(serviceName string) *MetricsCollector {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			patientsRegisteredTotal,
			encountersCreatedTotal,
			encounterTransitionsTotal,
			transitionsRejectedTotal,
			claimsSubmittedTotal,
			claimBridgeOutcomesTotal,
			appointmentsBookedTotal,
			insightRequestsTotal,
			suspiciousTransitionsTotal,
		)
	})

	return &MetricsCollector{serviceName: serviceName}
}

// RecordHTTPRequest records an HTTP request metric
func (mc *MetricsCollector) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode), mc.serviceName).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, mc.serviceName).Observe(duration.Seconds())
}

// RecordPatientRegistered records a patient registration
func (mc *MetricsCollector) RecordPatientRegistered() {
	patientsRegisteredTotal.Inc()
}

// RecordEncounterCreated records a new encounter
func (mc *MetricsCollector) RecordEncounterCreated(hospitalID, encounterType string) {
	encountersCreatedTotal.WithLabelValues(hospitalID, encounterType).Inc()
}

// RecordTransition records an applied encounter workflow transition
func (mc *MetricsCollector) RecordTransition(from, to string) {
	encounterTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordTransitionRejected records a rejected encounter transition
func (mc *MetricsCollector) RecordTransitionRejected(from, to string) {
	transitionsRejectedTotal.WithLabelValues(from, to).Inc()
}

// RecordClaimSubmitted records a claim submission
func (mc *MetricsCollector) RecordClaimSubmitted(providerID string) {
	claimsSubmittedTotal.WithLabelValues(providerID).Inc()
}

// RecordBridgeOutcome records the outcome of a scheduled bridge transition
// (applied, stale, cancelled)
func (mc *MetricsCollector) RecordBridgeOutcome(outcome string) {
	claimBridgeOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordAppointmentBooked records a booking
func (mc *MetricsCollector) RecordAppointmentBooked(hospitalID string) {
	appointmentsBookedTotal.WithLabelValues(hospitalID).Inc()
}

// RecordInsightRequest records an insight summarizer call outcome
// (ok, fallback)
func (mc *MetricsCollector) RecordInsightRequest(operation, outcome string) {
	insightRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordSuspicious records an out-of-order status change
func (mc *MetricsCollector) RecordSuspicious(entity string) {
	suspiciousTransitionsTotal.WithLabelValues(entity).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

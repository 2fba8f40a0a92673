// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthzDecisions counts authorization engine decisions by entity,
	// action, and outcome.
	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steeple_authz_decisions_total",
		Help: "Total authorization decisions by entity, action, and outcome",
	}, []string{"entity", "action", "outcome"})

	// Registrations counts onboarding completions by flow.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steeple_registrations_total",
		Help: "Total completed registrations by flow (church, member)",
	}, []string{"flow"})

	// AttendanceWrites counts attendance upserts by status.
	AttendanceWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steeple_attendance_writes_total",
		Help: "Total attendance check-in/check-out writes by status",
	}, []string{"status"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "steeple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steeple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// RecordAuthzDecision increments the authz decision counter.
func RecordAuthzDecision(entity, action, outcome string) {
	AuthzDecisions.WithLabelValues(entity, action, outcome).Inc()
}

// RecordRegistration increments the registration counter for a flow.
func RecordRegistration(flow string) {
	Registrations.WithLabelValues(flow).Inc()
}

// RecordAttendanceWrite increments the attendance write counter.
func RecordAttendanceWrite(status string) {
	AttendanceWrites.WithLabelValues(status).Inc()
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

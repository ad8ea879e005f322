// Package metrics holds the business counters exported on /metrics.
// HTTP and runtime metrics come from the OpenTelemetry exporter.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of enquiries persisted as leads",
		},
		[]string{"source"}, // web, api, cli
	)

	leadPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_persist_failures_total",
			Help: "Total number of enquiries that could not be saved",
		},
	)

	leadNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Total number of lead notifications by outcome",
		},
		[]string{"channel", "status"}, // status: sent, failed
	)

	enquiryValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_validation_failures_total",
			Help: "Total number of enquiries rejected before submission",
		},
		[]string{"reason"}, // missing_fields, invalid_email
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_auth_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"}, // success, failure, locked
	)

	dbConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

func RecordLeadSubmitted(source string) {
	if source == "" {
		source = "unknown"
	}
	leadsSubmittedTotal.WithLabelValues(source).Inc()
}

func RecordLeadPersistFailure() {
	leadPersistFailuresTotal.Inc()
}

func RecordLeadNotification(channel string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	leadNotificationsTotal.WithLabelValues(channel, status).Inc()
}

func RecordValidationFailure(reason string) {
	enquiryValidationFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordAuthAttempt(status string) {
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// UpdateDBStats copies connection pool stats into the gauges.
func UpdateDBStats(s sql.DBStats) {
	dbConnectionsInUse.Set(float64(s.InUse))
	dbConnectionsIdle.Set(float64(s.Idle))
}

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid and records nothing, so tests can wire components without touching
// the default registry.
type Metrics struct {
	LegsTotal     *prometheus.CounterVec
	LegDuration   *prometheus.HistogramVec
	CarrierErrors *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		LegsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_legs_total",
				Help: "Total number of vendor legs by operation, carrier, and outcome",
			},
			[]string{"operation", "carrier", "status"},
		),
		LegDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fulfillment_leg_duration_seconds",
				Help:    "Vendor leg duration in seconds by operation and carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "carrier"},
		),
		CarrierErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_carrier_errors_total",
				Help: "Total carrier API errors by carrier and error type",
			},
			[]string{"carrier", "error_type"},
		),
		Notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_notifications_total",
				Help: "Status notifications dispatched, by outcome",
			},
			[]string{"status"},
		),
	}
}

// RecordLeg records one vendor leg outcome.
func (m *Metrics) RecordLeg(operation, carrier, status string, duration float64) {
	if m == nil {
		return
	}
	m.LegsTotal.WithLabelValues(operation, carrier, status).Inc()
	m.LegDuration.WithLabelValues(operation, carrier).Observe(duration)
}

// RecordCarrierError records a carrier error metric.
func (m *Metrics) RecordCarrierError(carrier, errorType string) {
	if m == nil {
		return
	}
	m.CarrierErrors.WithLabelValues(carrier, errorType).Inc()
}

// RecordNotification records a dispatched notification outcome.
func (m *Metrics) RecordNotification(status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(status).Inc()
}

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconcileMetrics records metadata for reconciliation runs.
type ReconcileMetrics struct {
	duration    *prometheus.HistogramVec
	success     *prometheus.CounterVec
	failure     *prometheus.CounterVec
	discrepancy prometheus.Gauge
	unmatched   prometheus.Gauge
}

// NewReconcileMetrics registers the reconciliation metrics on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_run_duration_seconds",
		Help:    "Duration of reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_run_success",
		Help: "Successful reconciliation runs.",
	}, []string{"source"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_run_failure",
		Help: "Failed reconciliation runs.",
	}, []string{"source"})
	discrepancy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reconcile_total_discrepancy",
		Help: "Absolute mismatch amount found by the latest run, in currency units.",
	})
	unmatched := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reconcile_unmatched_rows",
		Help: "Rows classified missing on either side by the latest run.",
	})
	reg.MustRegister(duration, success, failure, discrepancy, unmatched)
	return &ReconcileMetrics{
		duration:    duration,
		success:     success,
		failure:     failure,
		discrepancy: discrepancy,
		unmatched:   unmatched,
	}
}

// ObserveDuration records the duration for the named source.
func (m *ReconcileMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named source.
func (m *ReconcileMetrics) IncSuccess(source string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailure increments the failure counter for the named source.
func (m *ReconcileMetrics) IncFailure(source string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(source)).Inc()
}

// SetDiscrepancy publishes the latest run's absolute mismatch total.
func (m *ReconcileMetrics) SetDiscrepancy(amount float64) {
	if m == nil || m.discrepancy == nil {
		return
	}
	m.discrepancy.Set(amount)
}

// SetUnmatched publishes the latest run's missing-row count.
func (m *ReconcileMetrics) SetUnmatched(count int) {
	if m == nil || m.unmatched == nil {
		return
	}
	m.unmatched.Set(float64(count))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}

// Package metrics exposes dispatch pipeline observations as Prometheus metrics.
package metrics

import (
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

var _ ports.DispatchMetrics = (*DispatchMetrics)(nil)

type DispatchMetrics struct {
	runs          *prometheus.CounterVec
	probeFailures *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	submissions   *prometheus.CounterVec
}

// NewDispatchMetrics registers the collectors with reg.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	factory := promauto.With(reg)

	return &DispatchMetrics{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Dispatch runs that reached a final status.",
			},
			[]string{"status"},
		),
		probeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "health_probe_failures_total",
				Help:      "Failed health probes of region-natural warehouses.",
			},
			[]string{"warehouse"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallbacks_total",
				Help:      "Orders routed away from their region-natural warehouse.",
			},
			[]string{"region"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Order submission attempts by warehouse and outcome.",
			},
			[]string{"warehouse", "outcome"},
		),
	}
}

func (m *DispatchMetrics) ObserveRun(status dispatch.Status) {
	m.runs.WithLabelValues(status.String()).Inc()
}

func (m *DispatchMetrics) ObserveHealthProbeFailure(nodeID string) {
	m.probeFailures.WithLabelValues(nodeID).Inc()
}

func (m *DispatchMetrics) ObserveFallback(region string) {
	m.fallbacks.WithLabelValues(region).Inc()
}

func (m *DispatchMetrics) ObserveSubmission(nodeID string, kind submission.Kind) {
	m.submissions.WithLabelValues(nodeID, kind.String()).Inc()
}

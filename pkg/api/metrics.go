package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation surface
type Metrics struct {
	// Decisions by outcome (AUTO_CONFIRM / LEAVE_PENDING)
	DecisionOutcome *prometheus.CounterVec

	// Rules skipped because their stored configuration was malformed
	RuleConfigErrors prometheus.Counter

	// End-to-end evaluation latency, including context building
	EvaluateLatency prometheus.Histogram
}

// NewMetrics registers the evaluation metrics with the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "autoconfirm_decisions_total",
			Help: "Total signup evaluation decisions by outcome",
		}, []string{"decision"}),

		RuleConfigErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "autoconfirm_rule_config_errors_total",
			Help: "Total rules skipped during evaluation due to malformed configuration",
		}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "autoconfirm_evaluate_duration_seconds",
			Help:    "Duration of signup evaluations including context building",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveDecision records a completed evaluation
func (m *Metrics) ObserveDecision(decision string, configErrors int, d time.Duration) {
	if m == nil {
		return
	}
	m.DecisionOutcome.WithLabelValues(decision).Inc()
	m.RuleConfigErrors.Add(float64(configErrors))
	m.EvaluateLatency.Observe(d.Seconds())
}

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by validation passes.
type Metrics struct {
	Runs         prometheus.Counter
	Issues       *prometheus.CounterVec
	RuleDuration *prometheus.HistogramVec
	Entities     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chronos",
			Subsystem: "validator",
			Name:      "runs_total",
			Help:      "Validation passes completed.",
		}),
		Issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chronos",
			Subsystem: "validator",
			Name:      "issues_total",
			Help:      "Relation clashes reported, by rule.",
		}, []string{"rule"}),
		RuleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chronos",
			Subsystem: "validator",
			Name:      "rule_duration_seconds",
			Help:      "Time spent evaluating one rule.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"rule"}),
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "chronos",
			Subsystem: "validator",
			Name:      "entities",
			Help:      "Typed entities in the last validated model, by class.",
		}, []string{"class"}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Issues, m.RuleDuration, m.Entities)
	}
	return m
}

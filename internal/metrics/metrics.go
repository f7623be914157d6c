// Package metrics exposes the bot's prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vipbot"

type Metrics struct {
	UpdatesTotal     *prometheus.CounterVec
	UpdateDuration   *prometheus.HistogramVec
	TransitionsTotal *prometheus.CounterVec
	OutcomesTotal    *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
}

// New registers the collectors with reg. Passing prometheus.DefaultRegisterer
// exposes them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpdatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "updates_total",
				Help:      "Total number of telegram updates handled",
			},
			[]string{"kind", "result"},
		),
		UpdateDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "update_duration_seconds",
				Help:      "Update handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		TransitionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "questionnaire",
				Name:      "transitions_total",
				Help:      "Step transitions requested by applicants",
			},
			[]string{"step", "direction"},
		),
		OutcomesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "questionnaire",
				Name:      "outcomes_total",
				Help:      "Finished questionnaires by outcome",
			},
			[]string{"status"},
		),
		ActiveSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "questionnaire",
				Name:      "active_sessions",
				Help:      "Questionnaire sessions currently open",
			},
		),
	}
}

// ObserveUpdate records one handled update of the given kind.
func (m *Metrics) ObserveUpdate(kind string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.UpdatesTotal.WithLabelValues(kind, result).Inc()
	m.UpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Transition(step, direction string) {
	m.TransitionsTotal.WithLabelValues(step, direction).Inc()
}

func (m *Metrics) Outcome(status string) {
	m.OutcomesTotal.WithLabelValues(status).Inc()
}

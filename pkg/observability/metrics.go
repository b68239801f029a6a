package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/palisade/pkg/domain"
)

// Metrics bundles prometheus collectors used by the gate.
type Metrics struct {
	ChecksTotal      *prometheus.CounterVec
	VerdictsTotal    *prometheus.CounterVec
	TimeoutsTotal    prometheus.Counter
	PollRoundsTotal  prometheus.Counter
	CheckDurationSec *prometheus.HistogramVec
}

// New registers the gate collectors on the given registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "palisade_checks_total",
			Help: "Total number of gate checks, by resulting action.",
		}, []string{"transition", "action"}),
		VerdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "palisade_verdicts_total",
			Help: "Total number of settled verdicts, by severity.",
		}, []string{"transition", "severity"}),
		TimeoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "palisade_timeouts_total",
			Help: "Total number of checks aborted on the polling deadline.",
		}),
		PollRoundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "palisade_poll_rounds_total",
			Help: "Total number of unsettled poll rounds across all checks.",
		}),
		CheckDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "palisade_check_duration_seconds",
			Help:    "Gate check duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"transition"}),
	}

	registry.MustRegister(
		m.ChecksTotal,
		m.VerdictsTotal,
		m.TimeoutsTotal,
		m.PollRoundsTotal,
		m.CheckDurationSec,
	)

	return m
}

// ObserveOutcome records one finished check.
func (m *Metrics) ObserveOutcome(outcome *domain.Outcome) {
	if m == nil || outcome == nil {
		return
	}

	m.ChecksTotal.WithLabelValues(outcome.TransitionID, string(outcome.Action)).Inc()
	m.CheckDurationSec.WithLabelValues(outcome.TransitionID).Observe(outcome.Elapsed.Seconds())
	m.PollRoundsTotal.Add(float64(outcome.Rounds))

	if outcome.Settled && !outcome.Skipped {
		m.VerdictsTotal.WithLabelValues(outcome.TransitionID, outcome.Verdict.String()).Inc()
	}
	if outcome.Action == domain.ActionAbortTimeout {
		m.TimeoutsTotal.Inc()
	}
}

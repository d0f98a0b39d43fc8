// Package metrics wires the combat kernel and the operator aggregate's
// narrow Metrics interfaces to github.com/prometheus/client_golang,
// grounded on the teacher's own internal/api/observability.go. One
// Metrics value satisfies both internal/aggregate.Metrics and
// internal/combat.Metrics against a single caller-supplied registerer,
// rather than forcing a global registry on the host process.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is registered once per process and shared between the
// aggregate service and every Combat/Engine the process drives.
type Metrics struct {
	appendsTotal         *prometheus.CounterVec
	replayTruncations    prometheus.Counter
	shotsFiredTotal      *prometheus.CounterVec
	roundDurationMs      prometheus.Histogram
	suppressionApplied   prometheus.Counter
}

// New registers every collector against reg and returns the bound
// Metrics. reg is typically a fresh prometheus.NewRegistry(), which is
// what cmd/gunrpg-demo passes.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		appendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gunrpg",
			Subsystem: "aggregate",
			Name:      "events_appended_total",
			Help:      "Number of events appended to an operator's event stream, by event type.",
		}, []string{"event_type"}),
		replayTruncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gunrpg",
			Subsystem: "aggregate",
			Name:      "replay_truncations_total",
			Help:      "Number of rehydrations that hit a hash-chain integrity failure and truncated.",
		}),
		shotsFiredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gunrpg",
			Subsystem: "combat",
			Name:      "shots_fired_total",
			Help:      "Number of shots resolved by the combat kernel, by weapon id.",
		}, []string{"weapon_id"}),
		roundDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gunrpg",
			Subsystem: "combat",
			Name:      "round_duration_ms",
			Help:      "Simulated in-combat time elapsed per round, in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000},
		}),
		suppressionApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gunrpg",
			Subsystem: "combat",
			Name:      "suppression_applications_total",
			Help:      "Number of times a shot contributed to an operator's suppression level.",
		}),
	}

	reg.MustRegister(
		m.appendsTotal,
		m.replayTruncations,
		m.shotsFiredTotal,
		m.roundDurationMs,
		m.suppressionApplied,
	)
	return m
}

// ObserveAppend satisfies internal/aggregate.Metrics.
func (m *Metrics) ObserveAppend(eventType string) {
	m.appendsTotal.WithLabelValues(eventType).Inc()
}

// ObserveReplayTruncation satisfies internal/aggregate.Metrics.
func (m *Metrics) ObserveReplayTruncation() {
	m.replayTruncations.Inc()
}

// ObserveShotFired satisfies internal/combat.Metrics.
func (m *Metrics) ObserveShotFired(weaponID string) {
	m.shotsFiredTotal.WithLabelValues(weaponID).Inc()
}

// ObserveRoundCompleted satisfies internal/combat.Metrics.
func (m *Metrics) ObserveRoundCompleted(durationMs uint64) {
	m.roundDurationMs.Observe(float64(durationMs))
}

// ObserveSuppressionApplied satisfies internal/combat.Metrics.
func (m *Metrics) ObserveSuppressionApplied() {
	m.suppressionApplied.Inc()
}

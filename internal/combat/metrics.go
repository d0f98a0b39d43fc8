package combat

// Metrics is the combat kernel's narrow telemetry seam, mirroring
// aggregate.Metrics so a single adapter in internal/metrics can satisfy
// both with one prometheus.Registerer (spec §7, "Metrics ... against a
// caller-supplied registerer").
type Metrics interface {
	ObserveShotFired(weaponID string)
	ObserveRoundCompleted(durationMs uint64)
	ObserveSuppressionApplied()
}

type noopMetrics struct{}

func (noopMetrics) ObserveShotFired(string)       {}
func (noopMetrics) ObserveRoundCompleted(uint64)  {}
func (noopMetrics) ObserveSuppressionApplied()    {}

package combat

// Constants bundles every tunable named in spec §6 ("Pet decay constants,
// suppression constants, cover transition constants — all tunable, but the
// defaults listed in §4.5/§4.6/§4.9 are the reference values") that belongs
// to the combat kernel specifically (pet constants live in the pet
// package). A caller gets DefaultConstants() unless it has a reason to
// diverge — mirrors the teacher's DefaultLimits/DefaultComboDefinitions
// pattern (internal/game/game_snapshot.go, internal/game/combat.go).
type Constants struct {
	// §4.4 shot resolution.
	BaseMaxAimReduction     float32
	MaxRecoilControl        float32
	MaxVarianceReduction    float32
	RecoilRecoveryBaseMult  float32
	RecoilRecoveryApMult    float32

	// §4.5 suppression.
	ContinuedFireWindowMs     uint64
	SuppressionDecayPerMs     float32
	SuppressionThreshold      float32
	NearMissAngularDeviation  float32
	SuppressiveBurstMinRounds int
	SuppressiveBurstMaxRounds int
	RecentVisibilityWindowMs  uint64

	// §4.6 cover & awareness.
	CoverNonePartialMs      uint64
	CoverPartialFullMinMs   uint64
	CoverPartialFullMaxMs   uint64
	CoverCancelThreshold    float32 // fraction through transition, below which cancel is allowed
	RecognitionBaseMs       float32
	RecognitionMinAccuracyMultiplier float32

	// §4.3 movement/intent scheduling.
	MovementIntervalMs uint64
	SlideStaminaCost   float32
	SlideDurationMs    uint64

	// §4.2 round pacing. A round is a bounded execution window, not an
	// unbounded drain — periodic housekeeping events (movement-interval
	// ticks, continued full-auto fire) would otherwise keep the queue
	// non-empty forever.
	MaxRoundDurationMs uint64

	// §4.4 flinch.
	FlinchDamageScale float32
}

// DefaultConstants returns the reference values named throughout spec §4.
func DefaultConstants() Constants {
	return Constants{
		BaseMaxAimReduction:    0.50,
		MaxRecoilControl:       0.60,
		MaxVarianceReduction:   0.30,
		RecoilRecoveryBaseMult: 0.5,
		RecoilRecoveryApMult:   1.5,

		ContinuedFireWindowMs:     1500,
		SuppressionDecayPerMs:     0.00015,
		SuppressionThreshold:      0.5,
		NearMissAngularDeviation:  0.08,
		SuppressiveBurstMinRounds: 2,
		SuppressiveBurstMaxRounds: 6,
		RecentVisibilityWindowMs:  3000,

		CoverNonePartialMs:    100,
		CoverPartialFullMinMs: 100,
		CoverPartialFullMaxMs: 150,
		CoverCancelThreshold:  0.5,
		RecognitionBaseMs:                1200,
		RecognitionMinAccuracyMultiplier: 0.3,

		MovementIntervalMs: 100,
		SlideStaminaCost:   25,
		SlideDurationMs:    400,
		MaxRoundDurationMs: 8000,

		FlinchDamageScale: 0.01,
	}
}

package combat

// MovementState is one of the five locomotion states of spec §3.
type MovementState uint8

const (
	Stationary MovementState = iota
	Walking
	Sprinting
	Crouching
	Sliding
)

// AimState tracks hip/ADS transitions (spec §3).
type AimState uint8

const (
	Hip AimState = iota
	TransitioningToADS
	ADS
	TransitioningToHip
)

// WeaponState is the firearm's readiness (spec §3).
type WeaponState uint8

const (
	Ready WeaponState = iota
	Reloading
	Jammed
)

// CoverLevel is the degree of cover an operator currently has (spec §4.6).
type CoverLevel uint8

const (
	CoverNone CoverLevel = iota
	CoverPartial
	CoverFull
)

// CoverTransition describes an in-progress cover change (spec §3,
// "CoverState ... may be transitioning with from, to, start_ms, end_ms").
type CoverTransition struct {
	Active  bool
	From    CoverLevel
	To      CoverLevel
	StartMs uint64
	EndMs   uint64
}

// BodyPart is one of the four vertical silhouette bands (spec §4.4).
type BodyPart uint8

const (
	LowerTorso BodyPart = iota
	UpperTorso
	Neck
	Head
)

// Operator is the ephemeral, simulation-only combat snapshot of an
// operator (spec §3, "CombatOperator"). It is produced once from an
// aggregate via the boundary package and mutated only by the kernel for
// the lifetime of one Combat.
type Operator struct {
	ID   OperatorID
	Name string

	// Vitals.
	Health            int
	MaxHealth         int
	Stamina           float32
	Fatigue           float32
	DistanceToEnemyM  float32

	// State machines.
	Movement MovementState
	Aim      AimState
	ADSTransitionStartMs    uint64
	ADSTransitionDurationMs uint64
	Weapon   WeaponState
	Cover    CoverLevel
	CoverTransitioning CoverTransition

	// Shooting.
	WeaponID              string
	CurrentAmmo           int
	CurrentRecoilY        float32
	RecoilRecoveryStartMs uint64

	// Proficiency.
	Accuracy             float32
	AccuracyProficiency  float32

	// Stress model.
	FlinchSeverity        float32
	FlinchShotsRemaining  int
	SuppressionLevel      float32
	LastSuppressionApplicationMs uint64

	// Awareness.
	RecognitionDelayEndMs   uint64 // 0 means no active delay
	RecognitionTargetID     OperatorID
	recognitionDelayTotalMs uint64 // full span of the active delay, for ramp interpolation

	// Transient flags.
	IsActivelyFiring bool
	ShotsFiredCount  int

	// Engine-private scheduling bookkeeping (not part of the spec's data
	// model, but required so the kernel never double-schedules a
	// continuation for the same shot/movement interval). Mirrors the
	// teacher's own mix of public render fields and private bookkeeping
	// fields on Player (internal/game/player.go's worldWidth/worldHeight).
	nextScheduledShotMs     *uint64
	nextScheduledMovementMs *uint64
	pendingIntent           *Intents

	// Round bookkeeping used by round-end policy (spec §4.2).
	missedThisRound bool

	// Reload bookkeeping.
	magazineSize int

	// Awareness/suppressive-fire bookkeeping (engine-private, spec §4.5/
	// §4.6: "visible within the recent-visibility window" and "a burst of
	// 2-6 rounds fired blind at a target known to be behind full cover").
	lastVisibleMs            uint64
	suppressiveBurstRemaining int
}

// EffectiveCover returns the cover level this operator currently presents;
// an operator mid-transition is always treated as Partial.
func (o *Operator) EffectiveCover() CoverLevel {
	if o.CoverTransitioning.Active {
		return CoverPartial
	}
	return o.Cover
}

// Visibility maps cover to the observer-facing exposure fraction of
// spec §4.6.
func Visibility(level CoverLevel) float32 {
	switch level {
	case CoverNone:
		return 1.0
	case CoverPartial:
		return 0.5
	case CoverFull:
		return 0.0
	default:
		return 1.0
	}
}

// IsAlive reports whether the operator's health is still positive.
func (o *Operator) IsAlive() bool { return o.Health > 0 }

// NewOperator builds a fresh combat-side snapshot for one participant,
// fully loaded and at rest (spec §3, the CombatOperator's initial state
// at the start of a Combat). internal/boundary is the only caller in
// practice — it derives id, name, health, and weapon from an
// aggregate.Operator before handing the result to NewCombat.
func NewOperator(id OperatorID, name string, health int, weapon Weapon, distanceToEnemyM float32) *Operator {
	return &Operator{
		ID:                  id,
		Name:                name,
		Health:              health,
		MaxHealth:           health,
		Stamina:             100,
		DistanceToEnemyM:    distanceToEnemyM,
		Movement:            Stationary,
		Aim:                 Hip,
		Weapon:              Ready,
		Cover:               CoverNone,
		WeaponID:            weapon.ID,
		CurrentAmmo:         weapon.MagazineSize,
		Accuracy:            0.6,
		AccuracyProficiency: 0.6,
		magazineSize:        weapon.MagazineSize,
	}
}

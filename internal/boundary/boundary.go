// Package boundary is the sole translator between the combat kernel and
// the operator aggregate (spec §5, design note: "Combat never mutates
// the aggregate directly; a boundary package is the sole translator").
// Neither internal/combat nor internal/aggregate imports the other;
// everything that crosses between them, including identity conversion,
// goes through here.
package boundary

import (
	"sync"
	"time"

	"github.com/archanox/gunrpg/internal/aggregate"
	"github.com/archanox/gunrpg/internal/combat"
)

// ToCombatOperatorID converts an aggregate identity into the bare opaque
// string the combat kernel knows about, so the kernel never needs to
// import uuid or the aggregate's identity machinery.
func ToCombatOperatorID(id aggregate.OperatorID) combat.OperatorID {
	return combat.OperatorID(id.String())
}

// FromCombatOperatorID parses a combat-side id back into an aggregate
// identity. Returns aggregate.NilOperatorID if id isn't a valid uuid —
// callers driving combat purely in-kernel (tests, tooling) are free to
// use ids that never round-trip to an aggregate.
func FromCombatOperatorID(id combat.OperatorID) aggregate.OperatorID {
	parsed, err := aggregate.ParseOperatorID(string(id))
	if err != nil {
		return aggregate.NilOperatorID
	}
	return parsed
}

// Snapshot builds a fresh combat.Operator from a rehydrated
// aggregate.Operator's current state (spec §6: the boundary translates a
// rehydrated aggregate into a combat snapshot at the start of an infil).
func Snapshot(op *aggregate.Operator, weapons combat.WeaponSet, distanceToEnemyM float32) *combat.Operator {
	weapon := weapons[op.EquippedWeaponName]
	return combat.NewOperator(
		ToCombatOperatorID(op.ID),
		op.Name,
		op.CurrentHealth,
		weapon,
		distanceToEnemyM,
	)
}

// Engine guards one Combat instance for the duration of an infil, the
// same way the teacher's own Engine serializes access to its shared
// mutable state behind a sync.RWMutex — the kernel itself holds no
// locks, so any concurrent caller (an HTTP handler, a scheduler
// goroutine) must go through an Engine rather than touching the Combat
// directly (spec §5).
type Engine struct {
	mu     sync.RWMutex
	combat *combat.Combat
	svc    *aggregate.Service
}

// NewEngine wraps an already-constructed Combat for one infil session.
func NewEngine(c *combat.Combat, svc *aggregate.Service) *Engine {
	return &Engine{combat: c, svc: svc}
}

func (e *Engine) Phase() combat.Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.combat.Phase()
}

func (e *Engine) SubmitIntents(opID combat.OperatorID, intents combat.Intents) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combat.SubmitIntents(opID, intents)
}

func (e *Engine) CancelIntents(opID combat.OperatorID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combat.CancelIntents(opID)
}

func (e *Engine) BeginExecution() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combat.BeginExecution()
}

// RunRound executes one round of the kernel and then translates its
// consequences back onto the operator aggregates — today that means a
// death becomes an OperatorDied append (spec §9: respawn, not
// permadeath). The kernel's own state never references aggregate.Service
// or aggregate.Operator; only this method does.
func (e *Engine) RunRound(now time.Time) (combat.RoundOutcome, error) {
	e.mu.Lock()
	outcome := e.combat.ExecuteUntilRoundEnd()
	e.mu.Unlock()

	for _, deadID := range outcome.Deaths {
		aggID := FromCombatOperatorID(deadID)
		if aggID.IsZero() {
			continue
		}
		if _, _, err := e.svc.Die(aggID, "combat", now); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

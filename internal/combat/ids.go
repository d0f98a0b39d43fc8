// Package combat implements the deterministic discrete-event duel engine
// of spec §4: a priority-ordered event queue, a planning/execution phase
// machine, and per-shot angular hit resolution. It knows nothing about the
// operator aggregate or persistence — the boundary package is the only
// thing allowed to translate between the two (spec §1, "Combat never
// mutates the aggregate directly").
package combat

// OperatorID identifies one of the two combatants in a Combat instance.
// It is an opaque string here rather than the aggregate package's
// uuid-backed OperatorID — the boundary package is responsible for
// stringifying an aggregate operator id into this type when it builds a
// CombatSnapshot, keeping the simulation kernel decoupled from the
// aggregate's identity representation entirely (spec §9, "Cyclic
// references... model this as indices/ids, not as stored back-references").
type OperatorID string

package combat

import (
	"sort"

	"go.uber.org/zap"
)

// Phase is the combat kernel's three-state machine (spec §4.2).
type Phase uint8

const (
	PhasePlanning Phase = iota
	PhaseExecuting
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "Planning"
	case PhaseExecuting:
		return "Executing"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// ExecContext is the narrow surface SimulationEvent.Execute gets instead
// of the whole Combat, so event variants can't reach into kernel
// internals they have no business touching (spec §9's tagged-sum-type
// design note).
type ExecContext struct {
	c *Combat
}

func (cx *ExecContext) Combat() *Combat { return cx.c }

// RoundOutcome summarizes one ExecuteUntilRoundEnd call (spec §4.2,
// "a round ends exactly once").
type RoundOutcome struct {
	EndedAtMs     uint64
	Deaths        []OperatorID // operators who died during this round only, not already-dead ones
	CombatEnded   bool
	EventsApplied int
}

// Combat is the kernel's single mutable simulation instance (spec §3,
// "Combat"). It is not safe for concurrent use; internal/boundary wraps
// one instance per live session behind a mutex, mirroring the teacher's
// own Engine.mu guard around its shared engine state.
type Combat struct {
	phase     Phase
	operators map[OperatorID]*Operator
	order     []OperatorID

	queue     *EventQueue
	rng       *TrackedRandom
	weapons   WeaponSet
	constants Constants

	seq   uint64
	nowMs uint64

	telemetry *Telemetry
	metrics   Metrics
	logger    *zap.Logger
}

// NewCombat constructs a kernel instance over a fixed set of operator
// snapshots (produced by internal/boundary), a weapon table, tunable
// constants, and a seed — the combat kernel is otherwise a pure function
// of (seed, intents-per-round) (spec §5, "deterministic given the
// seed").
func NewCombat(operators []*Operator, weapons WeaponSet, constants Constants, seed int64, telemetry *Telemetry, metrics Metrics, logger *zap.Logger) *Combat {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ops := make(map[OperatorID]*Operator, len(operators))
	order := make([]OperatorID, 0, len(operators))
	for _, op := range operators {
		ops[op.ID] = op
		order = append(order, op.ID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return &Combat{
		phase:     PhasePlanning,
		operators: ops,
		order:     order,
		queue:     NewEventQueue(),
		rng:       NewTrackedRandom(seed),
		weapons:   weapons,
		constants: constants,
		telemetry: telemetry,
		metrics:   metrics,
		logger:    logger,
	}
}

func (c *Combat) Phase() Phase     { return c.phase }
func (c *Combat) NowMs() uint64    { return c.nowMs }
func (c *Combat) nextSeq() uint64  { c.seq++; return c.seq }
func (c *Combat) schedule(e SimulationEvent) { c.queue.Schedule(e) }

// Operator returns the live combat-side state for id, if present.
func (c *Combat) Operator(id OperatorID) (*Operator, bool) {
	op, ok := c.operators[id]
	return op, ok
}

// BeginExecution consumes every operator's pending intent bundle and
// transitions Planning -> Executing (spec §4.2). Any event still queued
// from a prior round that isn't an in-flight bullet is dropped first
// (spec §4.1/§4.2), preserving the invariant that a bullet already
// committed to land always resolves at its scheduled time regardless of
// how many planning phases intervene (spec §5).
func (c *Combat) BeginExecution() error {
	if c.phase != PhasePlanning {
		return ErrWrongPhase
	}
	c.queue.ClearExceptInFlightBullets()
	for _, id := range c.order {
		op := c.operators[id]
		if !op.IsAlive() {
			continue
		}
		op.missedThisRound = false
		c.applyIntent(op)
	}
	c.phase = PhaseExecuting
	return nil
}

// ExecuteUntilRoundEnd drains the event queue in (time, operator,
// sequence) order until the queue is empty, an event reports EndsRound,
// or the next event lies beyond the round's MaxRoundDurationMs window (time
// then advances to the window's end and the event stays queued), then
// transitions to Planning (more operators alive) or Ended (spec §4.2,
// "a round ends exactly once").
func (c *Combat) ExecuteUntilRoundEnd() RoundOutcome {
	outcome := RoundOutcome{}
	if c.phase != PhaseExecuting {
		return outcome
	}

	wasAlive := make(map[OperatorID]bool, len(c.order))
	for _, id := range c.order {
		wasAlive[id] = c.operators[id].IsAlive()
	}

	cx := &ExecContext{c: c}
	roundStartMs := c.nowMs
	deadline := roundStartMs + c.constants.MaxRoundDurationMs
	for {
		e, ok := c.queue.Peek()
		if !ok {
			outcome.EndedAtMs = c.nowMs
			break
		}
		if e.TimeMs() > deadline {
			c.nowMs = deadline
			outcome.EndedAtMs = c.nowMs
			break
		}
		c.queue.Dequeue()
		c.nowMs = e.TimeMs()
		res := e.Execute(cx)
		outcome.EventsApplied++
		if res.EndsRound {
			outcome.EndedAtMs = c.nowMs
			break
		}
	}

	aliveCount := 0
	for _, id := range c.order {
		op := c.operators[id]
		if !op.IsAlive() {
			if wasAlive[id] {
				outcome.Deaths = append(outcome.Deaths, id)
			}
			continue
		}
		aliveCount++
	}

	if aliveCount <= 1 {
		c.phase = PhaseEnded
		outcome.CombatEnded = true
	} else {
		c.phase = PhasePlanning
	}

	c.metrics.ObserveRoundCompleted(outcome.EndedAtMs - roundStartMs)
	return outcome
}

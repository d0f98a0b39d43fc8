package combat

// IntentKind enumerates the primary order an operator can submit
// alongside a stance change for a planning phase (spec §4.3, "stance,
// then movement, then primary order").
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentFire
	IntentReload
	IntentToggleADS
	IntentTakeCover
	IntentLeaveCover
)

func (k IntentKind) String() string {
	switch k {
	case IntentFire:
		return "Fire"
	case IntentReload:
		return "Reload"
	case IntentToggleADS:
		return "ToggleADS"
	case IntentTakeCover:
		return "TakeCover"
	case IntentLeaveCover:
		return "LeaveCover"
	default:
		return "None"
	}
}

// Intents is the single bundle of simultaneous orders an operator submits
// during Planning (spec §3, "SimultaneousIntents"). Only one bundle is
// live per operator per round; BeginExecution consumes and clears it.
//
// Ordering within a single bundle is fixed (spec §4.3): stance is applied
// first, then the primary order is validated against the resulting
// stance (e.g. sprinting cancels an in-progress ADS request) before being
// scheduled.
type Intents struct {
	Stance   MovementState
	Primary  IntentKind
	TargetID OperatorID
}

// SubmitIntents stores cx's orders for the next BeginExecution call. Only
// legal during Planning (spec §4.2, phase machine guard).
func (c *Combat) SubmitIntents(opID OperatorID, intents Intents) error {
	if c.phase != PhasePlanning {
		return ErrWrongPhase
	}
	op, ok := c.operators[opID]
	if !ok {
		return ErrUnknownOperator
	}
	if !op.IsAlive() {
		return ErrOperatorDead
	}
	copied := intents
	op.pendingIntent = &copied
	return nil
}

// CancelIntents withdraws opID's pending orders for the round about to
// begin and strips any not-yet-resolved scheduled continuations already
// queued for it, while leaving in-flight bullets to land (spec §5).
func (c *Combat) CancelIntents(opID OperatorID) error {
	op, ok := c.operators[opID]
	if !ok {
		return ErrUnknownOperator
	}
	op.pendingIntent = nil
	op.nextScheduledShotMs = nil
	op.nextScheduledMovementMs = nil
	c.queue.RemoveAllForOperatorExceptInFlight(opID)
	return nil
}

// applyIntent consumes op's pending bundle at the start of execution,
// validating and scheduling whatever it implies.
func (c *Combat) applyIntent(op *Operator) {
	intent := op.pendingIntent
	op.pendingIntent = nil
	if intent == nil {
		return
	}

	c.applyStance(op, intent.Stance)

	switch intent.Primary {
	case IntentFire:
		c.handleFireIntent(op, intent.TargetID)
	case IntentReload:
		c.handleReloadIntent(op)
	case IntentToggleADS:
		c.handleADSToggleIntent(op)
	case IntentTakeCover:
		c.beginCoverTransition(op, CoverPartial)
	case IntentLeaveCover:
		c.beginCoverTransition(op, CoverNone)
	}
}

// applyStance updates movement state immediately and schedules the next
// movement-interval tick (spec §4.7). Sprinting forces the operator out
// of ADS (spec §4.3, "sprint auto-exits ADS").
func (c *Combat) applyStance(op *Operator, stance MovementState) {
	op.Movement = stance
	if stance == Sprinting && op.Aim != Hip {
		op.Aim = Hip
		op.IsActivelyFiring = false
	}
	if stance == Sliding {
		op.Stamina = clampF(op.Stamina-c.constants.SlideStaminaCost, 0, 100)
		c.schedule(&SlideCompleteEvent{
			eventBase: eventBase{timeMs: c.nowMs + c.constants.SlideDurationMs, operatorID: op.ID, sequence: c.nextSeq()},
		})
	}
	c.scheduleMovementInterval(op)
}

func (c *Combat) scheduleMovementInterval(op *Operator) {
	next := c.nowMs + c.constants.MovementIntervalMs
	op.nextScheduledMovementMs = &next
	c.schedule(&MovementIntervalEvent{
		eventBase: eventBase{timeMs: next, operatorID: op.ID, sequence: c.nextSeq()},
	})
}

func (c *Combat) handleFireIntent(op *Operator, targetID OperatorID) {
	if op.Weapon != Ready {
		return
	}
	if op.Aim == TransitioningToADS || op.Aim == TransitioningToHip {
		return
	}
	if op.CurrentAmmo <= 0 {
		c.handleReloadIntent(op)
		return
	}
	op.IsActivelyFiring = true
	c.beginRecognition(op, targetID)
	c.scheduleShot(op, targetID)
}

func (c *Combat) scheduleShot(op *Operator, targetID OperatorID) {
	weapon := c.weapons[op.WeaponID]
	interval := uint64(0)
	if weapon.RPM > 0 {
		interval = uint64(60000.0 / weapon.RPM)
	}
	t := c.nowMs
	if op.nextScheduledShotMs != nil && *op.nextScheduledShotMs > t {
		t = *op.nextScheduledShotMs
	}
	next := t + interval
	op.nextScheduledShotMs = &next
	c.schedule(&ShotFiredEvent{
		eventBase: eventBase{timeMs: t, operatorID: op.ID, sequence: c.nextSeq()},
		TargetID:  targetID,
	})
}

func (c *Combat) handleReloadIntent(op *Operator) {
	if op.Weapon == Reloading {
		return
	}
	op.Weapon = Reloading
	op.IsActivelyFiring = false
	weapon := c.weapons[op.WeaponID]
	c.schedule(&ReloadCompleteEvent{
		eventBase: eventBase{timeMs: c.nowMs + weapon.ReloadMs, operatorID: op.ID, sequence: c.nextSeq()},
	})
}

func (c *Combat) handleADSToggleIntent(op *Operator) {
	weapon := c.weapons[op.WeaponID]
	mult := adsMultiplier(op.Movement)
	switch op.Aim {
	case Hip:
		op.Aim = TransitioningToADS
		op.ADSTransitionStartMs = c.nowMs
		op.ADSTransitionDurationMs = uint64(float32(weapon.ADSMs) * mult)
		c.schedule(&ADSTransitionUpdateEvent{
			eventBase: eventBase{timeMs: c.nowMs + op.ADSTransitionDurationMs, operatorID: op.ID, sequence: c.nextSeq()},
			Target:    ADS,
		})
	case ADS:
		op.Aim = TransitioningToHip
		op.ADSTransitionStartMs = c.nowMs
		op.ADSTransitionDurationMs = uint64(float32(weapon.ADSMs) * mult)
		c.schedule(&ADSTransitionUpdateEvent{
			eventBase: eventBase{timeMs: c.nowMs + op.ADSTransitionDurationMs, operatorID: op.ID, sequence: c.nextSeq()},
			Target:    Hip,
		})
	}
}

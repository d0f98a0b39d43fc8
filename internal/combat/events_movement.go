package combat

// ADSTransitionUpdateEvent lands the aim state in its destination once a
// hip-to-ADS (or reverse) transition's duration has elapsed (spec §4.3).
type ADSTransitionUpdateEvent struct {
	eventBase
	Target AimState
}

func (e *ADSTransitionUpdateEvent) Kind() EventKind { return KindADSTransitionUpdate }

func (e *ADSTransitionUpdateEvent) Execute(cx *ExecContext) StepResult {
	op, ok := cx.c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	if op.Aim == TransitioningToADS || op.Aim == TransitioningToHip {
		op.Aim = e.Target
	}
	return StepResult{}
}

// MovementIntervalEvent is the kernel's periodic heartbeat for an
// operator's passive systems — recoil recovery and suppression decay
// (spec §4.4, "recoil recovers at 0.5 + 1.5 * accuracy_proficiency per
// recovery window"; spec §4.5, "suppression decays once no new
// application has landed for the continued-fire window"). It reschedules
// itself at MovementIntervalMs as long as combat is still executing.
type MovementIntervalEvent struct {
	eventBase
}

func (e *MovementIntervalEvent) Kind() EventKind { return KindMovementInterval }

func (e *MovementIntervalEvent) Execute(cx *ExecContext) StepResult {
	c := cx.c
	op, ok := c.operators[e.operatorID]
	if !ok || !op.IsAlive() {
		return StepResult{}
	}

	ap := c.effectiveAccuracyProficiency(op)
	recoveryMult := c.constants.RecoilRecoveryBaseMult + c.constants.RecoilRecoveryApMult*ap
	weapon := c.weapons[op.WeaponID]
	if weapon.RecoilRecoveryMs > 0 && op.CurrentRecoilY > 0 {
		step := op.CurrentRecoilY * recoveryMult * float32(c.constants.MovementIntervalMs) / float32(weapon.RecoilRecoveryMs)
		op.CurrentRecoilY = clampF(op.CurrentRecoilY-step, 0, 1)
		if op.CurrentRecoilY == 0 {
			op.RecoilRecoveryStartMs = 0
		}
	}

	if op.SuppressionLevel > 0 && e.timeMs-op.LastSuppressionApplicationMs >= c.constants.ContinuedFireWindowMs {
		decay := c.constants.SuppressionDecayPerMs * float32(c.constants.MovementIntervalMs)
		wasAbove := op.SuppressionLevel >= c.constants.SuppressionThreshold
		op.SuppressionLevel = clampF(op.SuppressionLevel-decay, 0, 1)
		if wasAbove && op.SuppressionLevel < c.constants.SuppressionThreshold {
			c.schedule(&SuppressionEndedEvent{
				eventBase: eventBase{timeMs: e.timeMs, operatorID: op.ID, sequence: c.nextSeq()},
			})
		}
	}

	if c.phase == PhaseExecuting {
		next := e.timeMs + c.constants.MovementIntervalMs
		op.nextScheduledMovementMs = &next
		c.schedule(&MovementIntervalEvent{
			eventBase: eventBase{timeMs: next, operatorID: op.ID, sequence: c.nextSeq()},
		})
	}
	return StepResult{}
}

// SlideCompleteEvent returns a sliding operator to Crouching once the
// slide's fixed duration elapses (spec §4.7).
type SlideCompleteEvent struct {
	eventBase
}

func (e *SlideCompleteEvent) Kind() EventKind { return KindSlideComplete }

func (e *SlideCompleteEvent) Execute(cx *ExecContext) StepResult {
	op, ok := cx.c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	if op.Movement == Sliding {
		op.Movement = Crouching
	}
	return StepResult{}
}

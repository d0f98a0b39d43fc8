package combat

// beginCoverTransition starts moving op toward target cover level,
// scheduling the started/completed events per spec §4.6's timing table.
// A cancellation of an already-active transition is only honored before
// CoverCancelThreshold fraction of its duration elapses.
func (c *Combat) beginCoverTransition(op *Operator, target CoverLevel) {
	from := op.EffectiveCover()
	if from == target {
		return
	}
	if op.CoverTransitioning.Active {
		if !c.cancelCoverIfEarly(op) {
			return
		}
		from = op.Cover
	}

	var durationMs uint64
	switch {
	case from == CoverNone, target == CoverNone:
		durationMs = c.constants.CoverNonePartialMs
	default:
		durationMs = c.constants.CoverPartialFullMinMs
	}

	op.CoverTransitioning = CoverTransition{
		Active:  true,
		From:    from,
		To:      target,
		StartMs: c.nowMs,
		EndMs:   c.nowMs + durationMs,
	}
	c.schedule(&CoverTransitionStartedEvent{
		eventBase: eventBase{timeMs: c.nowMs, operatorID: op.ID, sequence: c.nextSeq()},
	})
	c.schedule(&CoverTransitionCompletedEvent{
		eventBase: eventBase{timeMs: op.CoverTransitioning.EndMs, operatorID: op.ID, sequence: c.nextSeq()},
		Target:    target,
	})
}

// cancelCoverIfEarly aborts an in-progress transition if called before
// CoverCancelThreshold fraction of its duration has elapsed (spec §4.6).
func (c *Combat) cancelCoverIfEarly(op *Operator) bool {
	t := op.CoverTransitioning
	if !t.Active {
		return false
	}
	total := t.EndMs - t.StartMs
	if total == 0 {
		return false
	}
	elapsed := c.nowMs - t.StartMs
	if float32(elapsed)/float32(total) >= c.constants.CoverCancelThreshold {
		return false
	}
	op.CoverTransitioning = CoverTransition{}
	return true
}

// CoverTransitionStartedEvent marks the moment a cover change begins
// (spec §3, "CoverTransitionStarted").
type CoverTransitionStartedEvent struct {
	eventBase
}

func (e *CoverTransitionStartedEvent) Kind() EventKind { return KindCoverTransitionStarted }

func (e *CoverTransitionStartedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

// CoverTransitionCompletedEvent lands the operator's cover level once a
// transition's duration elapses, provided it wasn't cancelled first.
type CoverTransitionCompletedEvent struct {
	eventBase
	Target CoverLevel
}

func (e *CoverTransitionCompletedEvent) Kind() EventKind { return KindCoverTransitionCompleted }

func (e *CoverTransitionCompletedEvent) Execute(cx *ExecContext) StepResult {
	op, ok := cx.c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	if op.CoverTransitioning.Active && op.CoverTransitioning.EndMs == e.timeMs {
		op.Cover = e.Target
		op.CoverTransitioning = CoverTransition{}
	}
	return StepResult{}
}

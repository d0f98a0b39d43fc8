package combat

// beginRecognition starts (or restarts) observer's recognition delay
// against a newly acquired target (spec §4.6: recognition delay is
// inversely proportional to the observer's accuracy proficiency, scaled
// up by the observer's own suppression). While active, accuracy ramps
// linearly from RecognitionMinAccuracyMultiplier up to 1.0 across the
// delay rather than snapping straight to full effectiveness.
func (c *Combat) beginRecognition(observer *Operator, targetID OperatorID) {
	if observer.RecognitionTargetID == targetID && observer.RecognitionDelayEndMs > c.nowMs {
		return
	}
	ap := observer.AccuracyProficiency
	if ap <= 0.01 {
		ap = 0.01
	}
	delay := c.constants.RecognitionBaseMs / ap
	if observer.SuppressionLevel > 0 {
		delay *= 1 + observer.SuppressionLevel
	}
	observer.RecognitionTargetID = targetID
	observer.recognitionDelayTotalMs = uint64(delay)
	observer.RecognitionDelayEndMs = c.nowMs + uint64(delay)
	c.schedule(&TargetRecognizedEvent{
		eventBase: eventBase{timeMs: observer.RecognitionDelayEndMs, operatorID: observer.ID, sequence: c.nextSeq()},
		TargetID:  targetID,
	})
}

// recognitionAccuracyMultiplier is 1.0 once recognition is complete (or
// was never started) and linearly interpolated from
// RecognitionMinAccuracyMultiplier while still resolving.
func (c *Combat) recognitionAccuracyMultiplier(observer *Operator) float32 {
	if observer.RecognitionDelayEndMs == 0 || c.nowMs >= observer.RecognitionDelayEndMs {
		return 1.0
	}
	total := float32(observer.recognitionDelayTotalMs)
	if total <= 0 {
		return 1.0
	}
	remaining := float32(observer.RecognitionDelayEndMs - c.nowMs)
	progress := clampF(1-remaining/total, 0, 1)
	floor := c.constants.RecognitionMinAccuracyMultiplier
	return floor + (1-floor)*progress
}

// TargetRecognizedEvent marks the instant an observer's recognition
// delay elapses (spec §3, "TargetRecognized"). A sufficiently suppressed
// observer still flinches on recognition — a brief MicroReaction.
type TargetRecognizedEvent struct {
	eventBase
	TargetID OperatorID
}

func (e *TargetRecognizedEvent) Kind() EventKind { return KindTargetRecognized }

func (e *TargetRecognizedEvent) Execute(cx *ExecContext) StepResult {
	c := cx.c
	observer, ok := c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	if observer.SuppressionLevel >= c.constants.SuppressionThreshold {
		c.schedule(&MicroReactionEvent{
			eventBase: eventBase{timeMs: e.timeMs, operatorID: observer.ID, sequence: c.nextSeq()},
		})
	}
	return StepResult{}
}

// MicroReactionEvent is a brief, suppression-induced flinch on
// recognition that doesn't reset the flinch-duration-shots counter the
// way a direct hit does (spec §3, "MicroReaction").
type MicroReactionEvent struct {
	eventBase
}

func (e *MicroReactionEvent) Kind() EventKind { return KindMicroReaction }

func (e *MicroReactionEvent) Execute(cx *ExecContext) StepResult {
	op, ok := cx.c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	op.FlinchSeverity = clampF(op.FlinchSeverity+0.05, 0, 1)
	return StepResult{}
}

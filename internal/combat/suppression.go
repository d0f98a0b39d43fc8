package combat

// applySuppression folds one shot's effect into target's suppression
// level using the spec's probabilistic combination rule (spec §4.5,
// "new = 1 - (1-old) * (1-applied)") and fires SuppressionStarted /
// SuppressionUpdated as the threshold is crossed or not. triggered is
// true for either a near-miss (within NearMissAngularDeviation) or a
// blind suppressive-fire burst against a target in full cover.
func (c *Combat) applySuppression(shooter, target *Operator, triggered bool) {
	if target == nil || !triggered {
		return
	}
	weapon := c.weapons[shooter.WeaponID]

	rpmFactor := clampF(weapon.RPM/600, 0.5, 2.0)
	distFactor := clampF(1-(shooter.DistanceToEnemyM/500), 0.2, 1.0)
	movementFactor := multipliersFor(target.Movement).Suppression
	postureFactor := float32(1.0)
	switch target.EffectiveCover() {
	case CoverPartial:
		postureFactor = 0.7
	case CoverFull:
		postureFactor = 0.4
	}

	applied := clampF(weapon.SuppressionFactor*rpmFactor*distFactor*movementFactor*postureFactor, 0, 1)

	wasAbove := target.SuppressionLevel >= c.constants.SuppressionThreshold
	target.SuppressionLevel = clampF(1-(1-target.SuppressionLevel)*(1-applied), 0, 1)
	target.LastSuppressionApplicationMs = c.nowMs
	c.metrics.ObserveSuppressionApplied()

	nowAbove := target.SuppressionLevel >= c.constants.SuppressionThreshold
	switch {
	case !wasAbove && nowAbove:
		c.schedule(&SuppressionStartedEvent{
			eventBase: eventBase{timeMs: c.nowMs, operatorID: target.ID, sequence: c.nextSeq()},
		})
	case wasAbove && nowAbove:
		c.schedule(&SuppressionUpdatedEvent{
			eventBase: eventBase{timeMs: c.nowMs, operatorID: target.ID, sequence: c.nextSeq()},
			Level:     target.SuppressionLevel,
		})
	}

	c.maybeStartSuppressiveFire(shooter, target)
}

// maybeStartSuppressiveFire begins (or continues) a blind burst when the
// shooter's target is in full cover but was visible inside the recent-
// visibility window (spec §4.5, "a burst of 2-6 rounds fired blind at a
// target known to be behind full cover").
func (c *Combat) maybeStartSuppressiveFire(shooter, target *Operator) {
	if target.EffectiveCover() != CoverFull {
		return
	}
	if c.nowMs-target.lastVisibleMs > c.constants.RecentVisibilityWindowMs {
		return
	}
	if shooter.suppressiveBurstRemaining == 0 {
		span := c.constants.SuppressiveBurstMaxRounds - c.constants.SuppressiveBurstMinRounds
		rounds := c.constants.SuppressiveBurstMinRounds
		if span > 0 {
			rounds += int(c.rng.Uniform(0, float32(span+1)))
		}
		shooter.suppressiveBurstRemaining = rounds
		c.schedule(&SuppressiveFireStartedEvent{
			eventBase: eventBase{timeMs: c.nowMs, operatorID: shooter.ID, sequence: c.nextSeq()},
			TargetID:  target.ID,
			Rounds:    rounds,
		})
	}
	shooter.suppressiveBurstRemaining--
	if shooter.suppressiveBurstRemaining <= 0 {
		shooter.suppressiveBurstRemaining = 0
		c.schedule(&SuppressiveFireCompletedEvent{
			eventBase: eventBase{timeMs: c.nowMs, operatorID: shooter.ID, sequence: c.nextSeq()},
			TargetID:  target.ID,
		})
	}
}

// SuppressionStartedEvent marks the instant target's suppression crosses
// the threshold (spec §3, "SuppressionStarted").
type SuppressionStartedEvent struct {
	eventBase
}

func (e *SuppressionStartedEvent) Kind() EventKind { return KindSuppressionStarted }
func (e *SuppressionStartedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

// SuppressionUpdatedEvent records a further suppression application while
// already above threshold.
type SuppressionUpdatedEvent struct {
	eventBase
	Level float32
}

func (e *SuppressionUpdatedEvent) Kind() EventKind { return KindSuppressionUpdated }
func (e *SuppressionUpdatedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

// SuppressionEndedEvent marks suppression decaying back below threshold
// (spec §3, "SuppressionEnded").
type SuppressionEndedEvent struct {
	eventBase
}

func (e *SuppressionEndedEvent) Kind() EventKind { return KindSuppressionEnded }
func (e *SuppressionEndedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

// SuppressiveFireStartedEvent marks the start of a blind burst (spec §3,
// "SuppressiveFireStarted").
type SuppressiveFireStartedEvent struct {
	eventBase
	TargetID OperatorID
	Rounds   int
}

func (e *SuppressiveFireStartedEvent) Kind() EventKind { return KindSuppressiveFireStarted }
func (e *SuppressiveFireStartedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

// SuppressiveFireCompletedEvent marks the burst's end.
type SuppressiveFireCompletedEvent struct {
	eventBase
	TargetID OperatorID
}

func (e *SuppressiveFireCompletedEvent) Kind() EventKind { return KindSuppressiveFireCompleted }
func (e *SuppressiveFireCompletedEvent) Execute(cx *ExecContext) StepResult {
	return StepResult{}
}

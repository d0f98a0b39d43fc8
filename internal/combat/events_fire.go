package combat

// ShotFiredEvent represents the instant a trigger pull is committed; its
// ballistic outcome is resolved immediately and a DamageApplied or
// ShotMissed continuation is scheduled for the bullet's arrival (spec
// §4.4). A still-firing, still-loaded shooter reschedules its own next
// round, modeling full-auto/sustained fire without requiring a fresh
// intent every round.
type ShotFiredEvent struct {
	eventBase
	TargetID OperatorID
}

func (e *ShotFiredEvent) Kind() EventKind { return KindShotFired }

func (e *ShotFiredEvent) Execute(cx *ExecContext) StepResult {
	c := cx.c
	shooter, ok := c.operators[e.operatorID]
	if !ok || !shooter.IsAlive() || !shooter.IsActivelyFiring {
		return StepResult{}
	}
	if shooter.Weapon != Ready || shooter.CurrentAmmo <= 0 {
		shooter.IsActivelyFiring = false
		return StepResult{}
	}

	c.resolveShot(shooter, e.TargetID)

	if shooter.IsActivelyFiring && shooter.CurrentAmmo > 0 && shooter.Weapon == Ready {
		c.scheduleShot(shooter, e.TargetID)
	} else {
		shooter.IsActivelyFiring = false
	}
	return StepResult{}
}

// DamageAppliedEvent is the bullet landing on its target (spec §3,
// "DamageApplied"). A lethal hit decisively ends the round; a survivable
// hit does not, since more shots may already be in flight.
type DamageAppliedEvent struct {
	eventBase
	TargetID OperatorID
	Part     BodyPart
	Damage   float32
	WeaponID string
}

func (e *DamageAppliedEvent) Kind() EventKind { return KindDamageApplied }

func (e *DamageAppliedEvent) Execute(cx *ExecContext) StepResult {
	c := cx.c
	target, ok := c.operators[e.TargetID]
	if !ok {
		return StepResult{}
	}
	target.Health -= int(e.Damage)
	if target.Health < 0 {
		target.Health = 0
	}

	weapon := c.weapons[e.WeaponID]
	target.FlinchSeverity = clampF(target.FlinchSeverity+e.Damage*c.constants.FlinchDamageScale, 0, 1)
	if weapon.FlinchDurationShots > 0 {
		target.FlinchShotsRemaining = weapon.FlinchDurationShots
	}

	return StepResult{EndsRound: !target.IsAlive()}
}

// ShotMissedEvent is the bullet's scheduled arrival resolving to a miss
// (spec §3, "ShotMissed"). It ends the round once every living operator,
// and at least two of them, has had a miss resolve in this round (a mutual
// miss); otherwise the round goes on.
type ShotMissedEvent struct {
	eventBase
	TargetID OperatorID
}

func (e *ShotMissedEvent) Kind() EventKind { return KindShotMissed }

func (e *ShotMissedEvent) Execute(cx *ExecContext) StepResult {
	c := cx.c
	shooter, ok := c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	shooter.missedThisRound = true
	missed := 0
	for _, id := range c.order {
		op := c.operators[id]
		if !op.IsAlive() {
			continue
		}
		if !op.missedThisRound {
			return StepResult{}
		}
		missed++
	}
	return StepResult{EndsRound: missed >= 2}
}

// ReloadCompleteEvent refills the magazine and returns the weapon to
// Ready (spec §4.3, reload scheduling).
type ReloadCompleteEvent struct {
	eventBase
}

func (e *ReloadCompleteEvent) Kind() EventKind { return KindReloadComplete }

func (e *ReloadCompleteEvent) Execute(cx *ExecContext) StepResult {
	op, ok := cx.c.operators[e.operatorID]
	if !ok {
		return StepResult{}
	}
	op.Weapon = Ready
	op.CurrentAmmo = op.magazineSize
	return StepResult{}
}

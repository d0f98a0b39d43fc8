package combat

import "math"

// effectiveAccuracyProficiency composes base proficiency with flinch and
// suppression attenuation (spec §4.4, "effective accuracy proficiency =
// base, attenuated by flinch, then by suppression").
func (c *Combat) effectiveAccuracyProficiency(op *Operator) float32 {
	ap := op.AccuracyProficiency
	if op.FlinchShotsRemaining > 0 {
		ap *= 1 - op.FlinchSeverity
	}
	if op.SuppressionLevel > c.constants.SuppressionThreshold {
		ap *= 1 - (op.SuppressionLevel - c.constants.SuppressionThreshold)
	}
	ap *= c.recognitionAccuracyMultiplier(op)
	if ap < 0 {
		ap = 0
	}
	return ap
}

// resolveShot performs the full ballistic calculation for one round fired
// by shooter at targetID (spec §4.4): the shooter's intended band (Head in
// ADS, UpperTorso otherwise) anchors a Gaussian aim error, a recoil term,
// and a uniform variance jitter; the resulting angle either lands outside
// [0,1] (a miss) or inside the band partition it falls in. The bullet's
// arrival is scheduled after its travel time (spec §4.4, "t + distance /
// bullet_velocity").
func (c *Combat) resolveShot(shooter *Operator, targetID OperatorID) {
	weapon := c.weapons[shooter.WeaponID]
	shooter.CurrentAmmo--
	shooter.ShotsFiredCount++

	target, hasTarget := c.operators[targetID]

	blind := hasTarget && target.EffectiveCover() == CoverFull &&
		c.nowMs-target.lastVisibleMs <= c.constants.RecentVisibilityWindowMs
	if hasTarget && target.EffectiveCover() != CoverFull {
		target.lastVisibleMs = c.nowMs
	}

	ap := c.effectiveAccuracyProficiency(shooter)

	// Each fired shot works off the flinch this shooter is carrying from
	// being hit, then ticks it down (spec §4.4, "Each fired shot decrements
	// flinch_shots_remaining").
	if shooter.FlinchShotsRemaining > 0 {
		shooter.FlinchShotsRemaining--
		if shooter.FlinchShotsRemaining == 0 {
			shooter.FlinchSeverity = 0
		}
	}

	mv := multipliersFor(shooter.Movement)

	intended := intendedBand(shooter.Aim)
	base := centerOfBand(intended)

	baseAimStdDev := (1 - shooter.Accuracy) * 0.15
	swayStdDev := baseAimStdDev * (1 - ap*c.constants.BaseMaxAimReduction) * mv.Sway
	aimError := c.rng.Gaussian(0, swayStdDev)

	recoilRed := 1 - ap*c.constants.MaxRecoilControl

	spread := weapon.HipfireSpreadRad
	if shooter.Aim == ADS {
		spread = weapon.ADSSpreadRad
	}
	variance := c.rng.Uniform(-spread, spread) * (1 - ap*c.constants.MaxVarianceReduction)

	deviation := aimError + (shooter.CurrentRecoilY+weapon.VerticalRecoil)*recoilRed + variance
	final := base + deviation

	// current_recoil_y += weapon_vertical_recoil, then an immediate
	// 100 ms-equivalent partial recovery (spec §4.4, "Recoil").
	shooter.CurrentRecoilY += weapon.VerticalRecoil
	if shooter.RecoilRecoveryStartMs == 0 {
		shooter.RecoilRecoveryStartMs = c.nowMs
	}
	recoveryMult := c.constants.RecoilRecoveryBaseMult + c.constants.RecoilRecoveryApMult*ap
	if weapon.RecoilRecoveryMs > 0 {
		step := shooter.CurrentRecoilY * recoveryMult * 100 / float32(weapon.RecoilRecoveryMs)
		shooter.CurrentRecoilY = clampF(shooter.CurrentRecoilY-step, 0, 1)
	}

	travelMs := travelTimeMs(shooter.DistanceToEnemyM, weapon.BulletVelocityMps)
	landMs := c.nowMs + travelMs

	nearMiss := absF(deviation) <= c.constants.NearMissAngularDeviation
	if hasTarget {
		c.applySuppression(shooter, target, nearMiss || blind)
	}

	hit := hasTarget && !blind && target.IsAlive() && final >= 0 && final <= 1

	c.metrics.ObserveShotFired(weapon.ID)

	if !hit {
		c.telemetry.LogShot(shooter.ID, targetID, LowerTorso, 0, false)
		c.schedule(&ShotMissedEvent{
			eventBase: eventBase{timeMs: landMs, operatorID: shooter.ID, sequence: c.nextSeq()},
			TargetID:  targetID,
		})
		return
	}

	part := bodyPartForFraction(final)
	damage := weapon.DamageAt(shooter.DistanceToEnemyM, part)

	c.telemetry.LogShot(shooter.ID, targetID, part, damage, true)
	c.schedule(&DamageAppliedEvent{
		eventBase: eventBase{timeMs: landMs, operatorID: shooter.ID, sequence: c.nextSeq()},
		TargetID:  targetID,
		Part:      part,
		Damage:    damage,
		WeaponID:  weapon.ID,
	})
}

// intendedBand is the shooter's aim point (spec §4.4, "the shooter chooses
// an intended band: Head if in ADS, UpperTorso otherwise").
func intendedBand(aim AimState) BodyPart {
	if aim == ADS {
		return Head
	}
	return UpperTorso
}

// centerOfBand is the midpoint of each band's half-open interval over the
// silhouette (spec §4.4's `[0,0.25)/[0.25,0.5)/[0.5,0.75)/[0.75,1]`
// partition).
func centerOfBand(part BodyPart) float32 {
	switch part {
	case LowerTorso:
		return 0.125
	case UpperTorso:
		return 0.375
	case Neck:
		return 0.625
	case Head:
		return 0.875
	default:
		return 0.375
	}
}

func bodyPartForFraction(f float32) BodyPart {
	switch {
	case f < 0.25:
		return LowerTorso
	case f < 0.5:
		return UpperTorso
	case f < 0.75:
		return Neck
	default:
		return Head
	}
}

// travelTimeMs rounds away from zero (spec §4.4, "round to the nearest
// millisecond"); a non-positive velocity resolves instantly.
func travelTimeMs(distanceM, velocityMps float32) uint64 {
	if velocityMps <= 0 {
		return 0
	}
	t := float64(distanceM) / float64(velocityMps) * 1000
	if t <= 0 {
		return 0
	}
	return uint64(math.Round(t))
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package aggregate

import (
	"time"

	"github.com/archanox/gunrpg/internal/pet"
)

// append constructs, hashes, and applies the next event for this operator,
// then returns it. Every command method below funnels through this so the
// sequence/previous-hash bookkeeping lives in exactly one place.
func (o *Operator) append(eventType EventType, payload interface{}, now time.Time) Event {
	e := newEvent(o.ID, uint64(o.CurrentSeq+1), eventType, payload, o.LastHash, now)
	o.apply(e)
	return e
}

// GainXP records XP earned (spec §4.8, "XpGained").
func (o *Operator) GainXP(amount int, now time.Time) (Event, error) {
	return o.append(EventXPGained, XPGainedPayload{Amount: amount}, now), nil
}

// TreatWounds restores health, capped at MaxHealth (spec §4.8,
// "WoundsTreated").
func (o *Operator) TreatWounds(restored int, now time.Time) (Event, error) {
	return o.append(EventWoundsTreated, WoundsTreatedPayload{Restored: restored}, now), nil
}

// ChangeLoadout swaps the equipped weapon. Illegal while Infil — the
// loadout is locked for the duration of a deployment (spec §4.8,
// "LoadoutChanged ... illegal in Infil mode").
func (o *Operator) ChangeLoadout(weaponName string, now time.Time) (Event, error) {
	if o.Mode == ModeInfil {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventLoadoutChanged, LoadoutChangedPayload{WeaponName: weaponName}, now), nil
}

// UnlockPerk appends a perk to the unlocked set (spec §4.8, "PerkUnlocked").
func (o *Operator) UnlockPerk(perkName string, now time.Time) (Event, error) {
	return o.append(EventPerkUnlocked, PerkUnlockedPayload{PerkName: perkName}, now), nil
}

// StartInfil transitions Base -> Infil, snapshotting the current loadout
// and opening a new session (spec §4.8, "InfilStarted ... requires Base").
func (o *Operator) StartInfil(lockedLoadout string, sessionID SessionID, now time.Time) (Event, error) {
	if o.Mode != ModeBase {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventInfilStarted, InfilStartedPayload{
		SessionID:     sessionID,
		LockedLoadout: lockedLoadout,
		StartTime:     now,
	}, now), nil
}

// StartCombatSession records that the operator has entered combat while
// deployed (spec §4.8, "CombatSessionStarted ... requires Infil").
func (o *Operator) StartCombatSession(sessionID SessionID, now time.Time) (Event, error) {
	if o.Mode != ModeInfil {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventCombatSessionStarted, CombatSessionStartedPayload{SessionID: sessionID}, now), nil
}

// SucceedExfil clears the active combat session without touching the
// streak — only InfilEnded(successful=true) advances it (spec §4.8 and §9,
// "the duplication of success signals is load-bearing").
func (o *Operator) SucceedExfil(now time.Time) (Event, error) {
	if o.Mode != ModeInfil {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventExfilSucceeded, struct{}{}, now), nil
}

// FailExfil resets the exfil streak (spec §4.8, "ExfilFailed").
func (o *Operator) FailExfil(now time.Time) (Event, error) {
	if o.Mode != ModeInfil {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventExfilFailed, struct{}{}, now), nil
}

// EndInfil returns the operator to Base and clears the locked loadout
// snapshot. On success the exfil streak advances; on failure it resets
// (spec §4.8, "InfilEnded").
func (o *Operator) EndInfil(successful bool, reason string, now time.Time) (Event, error) {
	if o.Mode != ModeInfil {
		return Event{}, ErrPhaseViolation
	}
	return o.append(EventInfilEnded, InfilEndedPayload{Successful: successful, Reason: reason}, now), nil
}

// Die resets health to max and forces Base — operators are
// respawn-on-death, not permadeath (spec §4.8, §9). No phase precondition:
// death can strike an operator in either mode.
func (o *Operator) Die(cause string, now time.Time) (Event, error) {
	return o.append(EventOperatorDied, OperatorDiedPayload{Cause: cause}, now), nil
}

// ApplyPetAction runs the pet decay/action model (spec §4.9) and records
// the result. Pet actions are Base-only: "appending a pet action to an
// Infil aggregate must fail" (spec §4.8).
func (o *Operator) ApplyPetAction(input pet.Input, now time.Time) (Event, error) {
	if o.Mode != ModeBase {
		return Event{}, ErrPhaseViolation
	}
	payload := PetActionAppliedPayload{InputKind: uint8(input.Kind)}
	switch input.Kind {
	case pet.InputRest:
		payload.RestHours = input.RestDuration.Hours()
	case pet.InputEat:
		payload.Nutrition = input.Nutrition
	case pet.InputDrink:
		payload.Hydration = input.Hydration
	case pet.InputMission:
		payload.StressLoad = input.StressLoad
		payload.InjuryRisk = input.InjuryRisk
	}
	return o.append(EventPetActionApplied, payload, now), nil
}

// Package pet implements the background decay and action model for an
// operator's companion animal (§4.9). Decay and action application are
// pure functions of the current state, the elapsed time, and the input —
// no hidden clock, no global state, so callers can replay decisions
// deterministically the same way the combat kernel replays shots.
package pet

import (
	"math"
	"time"
)

// Stat bounds. Every PetState field lives in [0, 100] after Apply.
const (
	MinStat = 0.0
	MaxStat = 100.0
)

// Decay/recovery tuning. Defaults match the reference values in spec §4.9;
// all are exported so a caller can override them via Rules.
const (
	DefaultHungerPerHour      = 2.5
	DefaultHydrationPerHour   = 3.0
	DefaultFatiguePerHour     = 1.5
	DefaultStressPerHour      = 1.0
	DefaultInjuryStressFactor = 0.6 // stress accel per point of injury
	DefaultStressFatigueBoost = 1.8 // fatigue multiplier once stress crosses threshold
	DefaultStressThreshold    = 60.0
	DefaultMoraleDecayPerHour = 0.8
	DefaultHealthDecayPerHour = 1.2
	DefaultCriticalHunger     = 85.0
	DefaultCriticalHydration  = 15.0
	DefaultCriticalInjury     = 70.0
	DefaultMinRecoveryMult    = 0.15
)

// PetState is the companion animal's full scalar status. Every field is
// clamped to [MinStat, MaxStat] once, at the end of Apply (spec §4.9 step 4).
type PetState struct {
	Health      float64
	Fatigue     float64
	Injury      float64
	Stress      float64
	Morale      float64
	Hunger      float64
	Hydration   float64
	LastUpdated time.Time
}

// Healthy returns the default state for a newly created operator's pet.
func Healthy(now time.Time) PetState {
	return PetState{
		Health:      MaxStat,
		Fatigue:     0,
		Injury:      0,
		Stress:      0,
		Morale:      MaxStat,
		Hunger:      0,
		Hydration:   MaxStat,
		LastUpdated: now,
	}
}

// InputKind discriminates the pet action variants of spec §4.9 step 3.
type InputKind uint8

const (
	InputNone InputKind = iota
	InputRest
	InputEat
	InputDrink
	InputMission
)

// Input is the tagged action applied on top of background decay.
type Input struct {
	Kind         InputKind
	RestDuration time.Duration // Rest
	Nutrition    float64       // Eat
	Hydration    float64       // Drink
	StressLoad   float64       // Mission
	InjuryRisk   float64       // Mission
}

// Rest constructs a Rest input.
func Rest(d time.Duration) Input { return Input{Kind: InputRest, RestDuration: d} }

// Eat constructs an Eat input.
func Eat(nutrition float64) Input { return Input{Kind: InputEat, Nutrition: nutrition} }

// Drink constructs a Drink input.
func Drink(hydration float64) Input { return Input{Kind: InputDrink, Hydration: hydration} }

// Mission constructs a Mission input.
func Mission(stressLoad, injuryRisk float64) Input {
	return Input{Kind: InputMission, StressLoad: stressLoad, InjuryRisk: injuryRisk}
}

// Rules bundles the tunable decay/recovery constants so a caller can run a
// harsher or gentler simulation profile without recompiling (mirrors the
// teacher's ResourceLimits/DefaultLimits pattern in game_snapshot.go).
type Rules struct {
	HungerPerHour      float64
	HydrationPerHour   float64
	FatiguePerHour     float64
	StressPerHour      float64
	InjuryStressFactor float64
	StressFatigueBoost float64
	StressThreshold    float64
	MoraleDecayPerHour float64
	HealthDecayPerHour float64
	CriticalHunger     float64
	CriticalHydration  float64
	CriticalInjury     float64
	MinRecoveryMult    float64
}

// DefaultRules returns the spec §4.9 reference constants.
func DefaultRules() Rules {
	return Rules{
		HungerPerHour:      DefaultHungerPerHour,
		HydrationPerHour:   DefaultHydrationPerHour,
		FatiguePerHour:     DefaultFatiguePerHour,
		StressPerHour:      DefaultStressPerHour,
		InjuryStressFactor: DefaultInjuryStressFactor,
		StressFatigueBoost: DefaultStressFatigueBoost,
		StressThreshold:    DefaultStressThreshold,
		MoraleDecayPerHour: DefaultMoraleDecayPerHour,
		HealthDecayPerHour: DefaultHealthDecayPerHour,
		CriticalHunger:     DefaultCriticalHunger,
		CriticalHydration:  DefaultCriticalHydration,
		CriticalInjury:     DefaultCriticalInjury,
		MinRecoveryMult:    DefaultMinRecoveryMult,
	}
}

func clamp(v float64) float64 {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

// Apply computes the next PetState from the current state, the action
// input, and the instant it is evaluated at. It implements spec §4.9
// steps 1-5 in order: elapsed-time decay, input application, clamp, stamp.
func (r Rules) Apply(state PetState, input Input, now time.Time) PetState {
	elapsed := now.Sub(state.LastUpdated)
	hours := elapsed.Hours()
	if hours < 0 {
		hours = 0
	}

	next := state

	// Step 2: background decay, proportional to elapsed hours.
	next.Hunger += r.HungerPerHour * hours
	next.Hydration -= r.HydrationPerHour * hours

	fatigueRate := r.FatiguePerHour
	if next.Stress > r.StressThreshold {
		fatigueRate *= r.StressFatigueBoost
	}
	next.Fatigue += fatigueRate * hours

	stressRate := r.StressPerHour + r.InjuryStressFactor*next.Injury/MaxStat*r.StressPerHour
	next.Stress += stressRate * hours

	if next.Stress > r.StressThreshold {
		next.Morale -= r.MoraleDecayPerHour * hours
	}

	critical := next.Hunger >= r.CriticalHunger ||
		next.Hydration <= r.CriticalHydration ||
		next.Injury >= r.CriticalInjury
	if critical {
		next.Health -= r.HealthDecayPerHour * hours
		next.Morale -= r.MoraleDecayPerHour * 1.5 * hours
	}

	// Step 3: apply the input on top of decay.
	switch input.Kind {
	case InputRest:
		restHours := input.RestDuration.Hours()

		healthMult := 1.0 - (next.Injury/MaxStat)*(1-r.MinRecoveryMult)
		if healthMult < r.MinRecoveryMult {
			healthMult = r.MinRecoveryMult
		}
		next.Health += 10 * restHours * healthMult

		fatigueMult := 1.0 - (next.Stress/MaxStat)*(1-r.MinRecoveryMult)
		if fatigueMult < r.MinRecoveryMult {
			fatigueMult = r.MinRecoveryMult
		}
		next.Fatigue -= 20 * restHours * fatigueMult

		dehydration := (MaxStat - next.Hydration) / MaxStat
		hungerLevel := next.Hunger / MaxStat
		stressMult := 1.0 - math.Max(dehydration, hungerLevel)*(1-r.MinRecoveryMult)
		if stressMult < r.MinRecoveryMult {
			stressMult = r.MinRecoveryMult
		}
		next.Stress -= 15 * restHours * stressMult

	case InputEat:
		next.Hunger -= input.Nutrition

	case InputDrink:
		next.Hydration += input.Hydration

	case InputMission:
		next.Stress += input.StressLoad
		next.Injury += input.InjuryRisk
	}

	// Step 4: clamp every stat to [0, 100] once, at the end.
	next.Health = clamp(next.Health)
	next.Fatigue = clamp(next.Fatigue)
	next.Injury = clamp(next.Injury)
	next.Stress = clamp(next.Stress)
	next.Morale = clamp(next.Morale)
	next.Hunger = clamp(next.Hunger)
	next.Hydration = clamp(next.Hydration)

	// Step 5.
	next.LastUpdated = now
	return next
}

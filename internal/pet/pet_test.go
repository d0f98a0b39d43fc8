package pet

import (
	"testing"
	"time"
)

func TestApplyClampsEveryStatIntoRange(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state := Healthy(base)
	state.Hunger = 99
	state.Hydration = 1
	state.Injury = 95
	state.Stress = 95

	rules := DefaultRules()

	// A long elapsed window plus a brutal mission should still land every
	// stat inside [0, 100], never overflow or underflow.
	later := base.Add(200 * time.Hour)
	next := rules.Apply(state, Mission(1000, 1000), later)

	stats := map[string]float64{
		"Health":    next.Health,
		"Fatigue":   next.Fatigue,
		"Injury":    next.Injury,
		"Stress":    next.Stress,
		"Morale":    next.Morale,
		"Hunger":    next.Hunger,
		"Hydration": next.Hydration,
	}
	for name, v := range stats {
		if v < MinStat || v > MaxStat {
			t.Errorf("%s = %v, want in [%v, %v]", name, v, MinStat, MaxStat)
		}
	}
}

func TestRestRecoversHealthFatigueStress(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state := Healthy(base)
	state.Health = 40
	state.Fatigue = 80
	state.Stress = 80
	state.Hunger = 0
	state.Hydration = MaxStat
	state.Injury = 0

	rules := DefaultRules()
	next := rules.Apply(state, Rest(2*time.Hour), base.Add(2*time.Hour))

	if next.Health <= state.Health {
		t.Errorf("expected health to recover, got %v from %v", next.Health, state.Health)
	}
	if next.Fatigue >= state.Fatigue {
		t.Errorf("expected fatigue to drop, got %v from %v", next.Fatigue, state.Fatigue)
	}
	if next.Stress >= state.Stress {
		t.Errorf("expected stress to drop, got %v from %v", next.Stress, state.Stress)
	}
}

func TestInjuryDampensHealthRecoveryDuringRest(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	healthy := Healthy(base)
	healthy.Health = 30

	injured := Healthy(base)
	injured.Health = 30
	injured.Injury = 90

	rules := DefaultRules()
	after := base.Add(1 * time.Hour)

	healthyNext := rules.Apply(healthy, Rest(1*time.Hour), after)
	injuredNext := rules.Apply(injured, Rest(1*time.Hour), after)

	if injuredNext.Health-injured.Health >= healthyNext.Health-healthy.Health {
		t.Errorf("injured recovery (%v) should be smaller than healthy recovery (%v)",
			injuredNext.Health-injured.Health, healthyNext.Health-healthy.Health)
	}
}

func TestEatReducesHunger(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state := Healthy(base)
	state.Hunger = 50

	rules := DefaultRules()
	next := rules.Apply(state, Eat(20), base)

	if next.Hunger >= state.Hunger {
		t.Errorf("expected hunger to drop below %v, got %v", state.Hunger, next.Hunger)
	}
}

func TestMissionRaisesStressAndInjury(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state := Healthy(base)

	rules := DefaultRules()
	next := rules.Apply(state, Mission(10, 5), base)

	if next.Stress <= state.Stress {
		t.Errorf("expected stress to rise, got %v from %v", next.Stress, state.Stress)
	}
	if next.Injury <= state.Injury {
		t.Errorf("expected injury to rise, got %v from %v", next.Injury, state.Injury)
	}
}

func TestLastUpdatedAdvancesToNow(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state := Healthy(base)

	rules := DefaultRules()
	now := base.Add(3 * time.Hour)
	next := rules.Apply(state, Input{}, now)

	if !next.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", next.LastUpdated, now)
	}
}

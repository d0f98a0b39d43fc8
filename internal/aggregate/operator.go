package aggregate

import (
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/archanox/gunrpg/internal/pet"
)

// Mode is the operator's out-of-combat lifecycle mode (spec §3).
type Mode uint8

const (
	ModeBase Mode = iota
	ModeInfil
)

func (m Mode) String() string {
	if m == ModeInfil {
		return "Infil"
	}
	return "Base"
}

// DefaultMaxHealth is the default derived max health for a freshly created
// operator (spec §3, "health (derived from progression; default max 100)").
const DefaultMaxHealth = 100

// Operator is the long-lived, out-of-combat identity and progression
// aggregate (spec §3, "OperatorAggregate"). It is reconstructed only by
// replaying its Events; Operator itself never mutates without producing
// a corresponding Event.
type Operator struct {
	ID   OperatorID
	Name string

	TotalXP       int
	UnlockedPerks []string
	ExfilStreak   int

	CurrentHealth int
	MaxHealth     int

	EquippedWeaponName string
	LockedLoadout      string

	Mode                Mode
	InfilStartTime      time.Time
	InfilSessionID      SessionID
	ActiveCombatSession SessionID

	Pet pet.PetState

	Events       []Event
	CurrentSeq   int64 // len(Events) - 1; -1 when empty
	LastHash     string
	PetRules     pet.Rules
}

// lastSequence returns the sequence number of the most recently applied
// event, or -1 if the aggregate has no events yet.
func (o *Operator) lastSequence() int64 {
	return o.CurrentSeq
}

// Create builds a brand-new aggregate and its OperatorCreated event (spec
// §6, "create(id, name, now)"). Fails on an empty or whitespace-only name.
func Create(id OperatorID, name string, now time.Time) (*Operator, Event, error) {
	trimmed := strings.TrimSpace(name)

	var err error
	if trimmed == "" {
		err = multierr.Append(err, ErrInvariantViolation)
	}
	if id.IsZero() {
		err = multierr.Append(err, ErrInvariantViolation)
	}
	if err != nil {
		return nil, Event{}, err
	}

	event := newEvent(id, 0, EventOperatorCreated, OperatorCreatedPayload{Name: trimmed}, "", now)

	op := &Operator{
		ID:         id,
		PetRules:   pet.DefaultRules(),
		CurrentSeq: -1,
	}
	op.apply(event)
	return op, event, nil
}

// apply mutates the aggregate for a single validated event (spec §4.8
// "State transitions on apply"). Callers must have already verified hash
// and chain integrity; apply never re-checks them.
func (o *Operator) apply(e Event) {
	switch e.Type {
	case EventOperatorCreated:
		var p OperatorCreatedPayload
		_ = decodePayload(e.Payload, &p)
		o.Name = p.Name
		o.TotalXP = 0
		o.UnlockedPerks = nil
		o.ExfilStreak = 0
		o.MaxHealth = DefaultMaxHealth
		o.CurrentHealth = DefaultMaxHealth
		o.EquippedWeaponName = ""
		o.LockedLoadout = ""
		o.Mode = ModeBase
		o.Pet = pet.Healthy(e.Timestamp)

	case EventXPGained:
		var p XPGainedPayload
		_ = decodePayload(e.Payload, &p)
		o.TotalXP += p.Amount

	case EventWoundsTreated:
		var p WoundsTreatedPayload
		_ = decodePayload(e.Payload, &p)
		o.CurrentHealth += p.Restored
		if o.CurrentHealth > o.MaxHealth {
			o.CurrentHealth = o.MaxHealth
		}

	case EventLoadoutChanged:
		var p LoadoutChangedPayload
		_ = decodePayload(e.Payload, &p)
		o.EquippedWeaponName = p.WeaponName

	case EventPerkUnlocked:
		var p PerkUnlockedPayload
		_ = decodePayload(e.Payload, &p)
		o.UnlockedPerks = append(o.UnlockedPerks, p.PerkName)

	case EventInfilStarted:
		var p InfilStartedPayload
		_ = decodePayload(e.Payload, &p)
		o.Mode = ModeInfil
		o.InfilSessionID = p.SessionID
		o.InfilStartTime = p.StartTime
		o.LockedLoadout = p.LockedLoadout

	case EventCombatSessionStarted:
		var p CombatSessionStartedPayload
		_ = decodePayload(e.Payload, &p)
		o.ActiveCombatSession = p.SessionID

	case EventExfilSucceeded:
		o.ActiveCombatSession = NilSessionID

	case EventExfilFailed:
		o.ExfilStreak = 0

	case EventInfilEnded:
		var p InfilEndedPayload
		_ = decodePayload(e.Payload, &p)
		o.Mode = ModeBase
		o.InfilSessionID = NilSessionID
		o.ActiveCombatSession = NilSessionID
		o.LockedLoadout = ""
		if p.Successful {
			o.ExfilStreak++
		} else {
			o.ExfilStreak = 0
		}

	case EventOperatorDied:
		o.CurrentHealth = o.MaxHealth
		o.ExfilStreak = 0
		o.Mode = ModeBase
		o.InfilSessionID = NilSessionID
		o.ActiveCombatSession = NilSessionID
		o.LockedLoadout = ""

	case EventPetActionApplied:
		var p PetActionAppliedPayload
		_ = decodePayload(e.Payload, &p)
		input := petInputFromPayload(p)
		o.Pet = o.PetRules.Apply(o.Pet, input, e.Timestamp)
	}

	o.Events = append(o.Events, e)
	o.CurrentSeq = int64(e.Sequence)
	o.LastHash = e.Hash
}

func petInputFromPayload(p PetActionAppliedPayload) pet.Input {
	switch pet.InputKind(p.InputKind) {
	case pet.InputRest:
		return pet.Rest(time.Duration(p.RestHours * float64(time.Hour)))
	case pet.InputEat:
		return pet.Eat(p.Nutrition)
	case pet.InputDrink:
		return pet.Drink(p.Hydration)
	case pet.InputMission:
		return pet.Mission(p.StressLoad, p.InjuryRisk)
	default:
		return pet.Input{}
	}
}

// IsDead reports whether this operator's current health is at or below
// zero. Respawn-on-death (spec §4.8, §9) means no applied event leaves it
// there: OperatorDied restores full health, and no event lowers it.
func (o *Operator) IsDead() bool {
	return o.CurrentHealth <= 0
}

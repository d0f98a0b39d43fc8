package aggregate

import (
	"time"

	"go.uber.org/zap"

	"github.com/archanox/gunrpg/internal/pet"
)

// Metrics is the narrow surface the aggregate service needs from the
// metrics package (see internal/metrics), kept as an interface here so this
// package never imports prometheus directly — it only needs counters bumped.
type Metrics interface {
	ObserveAppend(eventType string)
	ObserveReplayTruncation()
}

type noopMetrics struct{}

func (noopMetrics) ObserveAppend(string)     {}
func (noopMetrics) ObserveReplayTruncation() {}

// Service is the "Aggregate service" of spec §6: create/rehydrate/append
// against a backing Store, with structured logging and metrics as side
// channels that never affect the result (spec §7, "Logging is a side
// channel the core may emit but never relies on").
type Service struct {
	store   Store
	logger  *zap.Logger
	metrics Metrics
}

// NewService wires a Store to an optional logger and metrics sink. A nil
// logger becomes zap.NewNop(); a nil metrics becomes a no-op, matching the
// teacher's pattern of optional onDamage/onJoin callbacks in Engine.
func NewService(store Store, logger *zap.Logger, metrics Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{store: store, logger: logger, metrics: metrics}
}

// Create builds a new aggregate, persists its OperatorCreated event, and
// returns both (spec §6, "create(id, name, now)").
func (s *Service) Create(id OperatorID, name string, now time.Time) (*Operator, Event, error) {
	op, event, err := Create(id, name, now)
	if err != nil {
		return nil, Event{}, err
	}
	if err := s.store.Append(id, event, ""); err != nil {
		return nil, Event{}, err
	}
	s.metrics.ObserveAppend(event.Type.String())
	s.logger.Info("operator created", zap.String("operator_id", id.String()), zap.String("name", name))
	return op, event, nil
}

// Rehydrate loads id's event stream and replays it (spec §6, "rehydrate").
// A truncated replay is logged, not hidden — the caller still receives the
// partial Operator and can decide whether to reject it (spec §7).
func (s *Service) Rehydrate(id OperatorID) (*Operator, error) {
	events, err := s.store.Load(id)
	if err != nil {
		return nil, err
	}
	result, err := FromEvents(events)
	if err != nil {
		return nil, err
	}
	if result.Truncated {
		s.metrics.ObserveReplayTruncation()
		s.logger.Warn("replay truncated on integrity failure",
			zap.String("operator_id", id.String()),
			zap.Int("applied", result.Applied),
			zap.Int("failed_at", result.FailedAt),
			zap.Int("stream_length", len(events)),
		)
	}
	return result.Operator, nil
}

// command is the shape shared by every Operator mutator method: it runs
// against an already-loaded aggregate and returns the event it appended.
type command func(*Operator) (Event, error)

// run rehydrates id, applies fn, persists the resulting event against the
// aggregate's last known hash, and returns the refreshed aggregate. A
// concurrency conflict here means another writer appended in the interim;
// the caller must retry by rehydrating again (spec §7).
func (s *Service) run(id OperatorID, fn command) (*Operator, Event, error) {
	op, err := s.Rehydrate(id)
	if err != nil {
		return nil, Event{}, err
	}

	expectedLastHash := op.LastHash
	event, err := fn(op)
	if err != nil {
		return nil, Event{}, err
	}

	if err := s.store.Append(id, event, expectedLastHash); err != nil {
		return nil, Event{}, err
	}
	s.metrics.ObserveAppend(event.Type.String())
	return op, event, nil
}

func (s *Service) GainXP(id OperatorID, amount int, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.GainXP(amount, now) })
}

func (s *Service) TreatWounds(id OperatorID, restored int, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.TreatWounds(restored, now) })
}

func (s *Service) ChangeLoadout(id OperatorID, weaponName string, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.ChangeLoadout(weaponName, now) })
}

func (s *Service) UnlockPerk(id OperatorID, perkName string, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.UnlockPerk(perkName, now) })
}

func (s *Service) StartInfil(id OperatorID, now time.Time) (*Operator, Event, error) {
	sessionID := NewSessionID()
	return s.run(id, func(op *Operator) (Event, error) {
		return op.StartInfil(op.EquippedWeaponName, sessionID, now)
	})
}

func (s *Service) StartCombatSession(id OperatorID, now time.Time) (*Operator, Event, error) {
	sessionID := NewSessionID()
	return s.run(id, func(op *Operator) (Event, error) { return op.StartCombatSession(sessionID, now) })
}

func (s *Service) SucceedExfil(id OperatorID, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.SucceedExfil(now) })
}

func (s *Service) FailExfil(id OperatorID, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.FailExfil(now) })
}

func (s *Service) EndInfil(id OperatorID, successful bool, reason string, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.EndInfil(successful, reason, now) })
}

func (s *Service) Die(id OperatorID, cause string, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.Die(cause, now) })
}

func (s *Service) ApplyPetAction(id OperatorID, input pet.Input, now time.Time) (*Operator, Event, error) {
	return s.run(id, func(op *Operator) (Event, error) { return op.ApplyPetAction(input, now) })
}

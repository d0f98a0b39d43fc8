package aggregate

import "github.com/archanox/gunrpg/internal/pet"

// RehydrateResult reports how much of an event stream was actually applied
// (spec §7, "Integrity failure ... the caller is informed of the
// truncation point so it can decide whether to reject the stream").
type RehydrateResult struct {
	Operator  *Operator
	Applied   int  // number of events successfully applied
	Truncated bool // true if replay stopped before consuming the whole stream
	// FailedAt is the index into the input slice of the first event that
	// failed hash or chain verification. Meaningless when Truncated is false.
	FailedAt int
}

// FromEvents reconstructs an aggregate by replaying an ordered event list
// (spec §4.8, "rehydrate"). Verification proceeds event by event:
//
//  1. event.hash must equal recompute(event).
//  2. event.verify_chain(prior) must hold (sequence + previous_hash).
//
// The first event failing either check terminates replay: everything
// before it is applied, it and everything after it is discarded. If no
// event passes — including an empty input — replay fails with
// ErrEmptyOrCorruptStream.
func FromEvents(events []Event) (RehydrateResult, error) {
	if len(events) == 0 {
		return RehydrateResult{}, ErrEmptyOrCorruptStream
	}

	op := &Operator{
		ID:         events[0].OperatorID,
		PetRules:   pet.DefaultRules(),
		CurrentSeq: -1,
	}

	var prior Event
	hasPrior := false

	for i, e := range events {
		if e.Hash != e.recompute() {
			return truncatedResult(op, i)
		}
		if hasPrior {
			if !e.verifyChain(prior) {
				return truncatedResult(op, i)
			}
		} else if e.Sequence != 0 || e.PreviousHash != "" {
			// The very first applied event must be sequence 0 with an
			// empty previous hash (spec §3 invariants).
			return truncatedResult(op, i)
		}

		op.apply(e)
		prior = e
		hasPrior = true
	}

	return RehydrateResult{Operator: op, Applied: len(events), Truncated: false}, nil
}

func truncatedResult(op *Operator, failedAt int) (RehydrateResult, error) {
	if len(op.Events) == 0 {
		return RehydrateResult{}, ErrEmptyOrCorruptStream
	}
	return RehydrateResult{
		Operator:  op,
		Applied:   len(op.Events),
		Truncated: true,
		FailedAt:  failedAt,
	}, nil
}

package aggregate

import "errors"

// Error taxonomy (spec §7). Sentinel values are wrapped with fmt.Errorf
// where extra context helps a caller, mirroring the teacher's
// errors.New-sentinel style (internal/game/team.go) and the
// opd-ai-desktop-companion battle package's ErrBattleNotActive family.
var (
	// ErrPhaseViolation: an append or command is illegal in the aggregate's
	// current lifecycle mode (e.g. starting infil while already Infil).
	ErrPhaseViolation = errors.New("aggregate: phase violation")

	// ErrInvariantViolation: a structural invariant was violated (empty
	// name, empty operator id, sequence discontinuity on manual append).
	ErrInvariantViolation = errors.New("aggregate: invariant violation")

	// ErrConcurrencyConflict: append was attempted against a stale
	// expected_last_hash.
	ErrConcurrencyConflict = errors.New("aggregate: concurrency conflict")

	// ErrEmptyOrCorruptStream: rehydrate found no event that passed
	// integrity verification (spec §4.8 step 3).
	ErrEmptyOrCorruptStream = errors.New("aggregate: empty or corrupt stream")
)

package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archanox/gunrpg/internal/pet"
)

func newTestService(t *testing.T) (*Service, OperatorID) {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)
	id := NewOperatorID()
	return svc, id
}

// Scenario E — Infil/exfil lifecycle.
func TestScenarioE_InfilExfilLifecycle(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.Create(id, "Vega", now)
	require.NoError(t, err)

	_, _, err = svc.ChangeLoadout(id, "rifle-a", now)
	require.NoError(t, err)

	_, _, err = svc.StartInfil(id, now.Add(time.Minute))
	require.NoError(t, err)

	_, _, err = svc.StartCombatSession(id, now.Add(2*time.Minute))
	require.NoError(t, err)

	_, _, err = svc.SucceedExfil(id, now.Add(3*time.Minute))
	require.NoError(t, err)

	op, _, err := svc.EndInfil(id, true, "extracted", now.Add(4*time.Minute))
	require.NoError(t, err)

	require.Equal(t, 1, op.ExfilStreak)
	require.Equal(t, ModeBase, op.Mode)
	require.True(t, op.ActiveCombatSession.IsZero())
	require.Equal(t, "", op.LockedLoadout)
}

// Scenario F — Death-respawn.
func TestScenarioF_DeathRespawn(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.Create(id, "Kestrel", now)
	require.NoError(t, err)

	op, _, err := svc.Die(id, "gunshot", now.Add(time.Minute))
	require.NoError(t, err)

	require.Equal(t, op.MaxHealth, op.CurrentHealth)
	require.Equal(t, 0, op.ExfilStreak)
	require.Equal(t, ModeBase, op.Mode)
	require.False(t, op.IsDead())
}

// Scenario D — Hash-chain integrity: corrupting event index 3 in a 5-event
// stream truncates replay to events 0-2.
func TestScenarioD_HashChainIntegrityTruncatesOnCorruption(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := svc.store.(*MemoryStore)

	_, _, err := svc.Create(id, "Orca", now) // sequence 0
	require.NoError(t, err)
	_, _, err = svc.GainXP(id, 10, now) // sequence 1
	require.NoError(t, err)
	_, _, err = svc.GainXP(id, 20, now) // sequence 2
	require.NoError(t, err)
	_, _, err = svc.UnlockPerk(id, "steady-hands", now) // sequence 3
	require.NoError(t, err)
	_, _, err = svc.GainXP(id, 5, now) // sequence 4
	require.NoError(t, err)

	events, err := store.Load(id)
	require.NoError(t, err)
	require.Len(t, events, 5)

	corrupted := make([]Event, len(events))
	copy(corrupted, events)
	corrupted[3].Payload = []byte(`{"perkName":"tampered"}`)

	result, err := FromEvents(corrupted)
	require.NoError(t, err)
	require.True(t, result.Truncated)
	require.Equal(t, 3, result.FailedAt)
	require.Equal(t, 3, result.Applied)
	require.Equal(t, 30, result.Operator.TotalXP) // only the two GainXP(10), GainXP(20) applied
}

func TestRehydrateMatchesLiveAggregate(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	live, _, err := svc.Create(id, "Juno", now)
	require.NoError(t, err)
	live, _, err = svc.GainXP(id, 50, now)
	require.NoError(t, err)
	live, _, err = svc.ChangeLoadout(id, "smg-b", now)
	require.NoError(t, err)
	live, _, err = svc.UnlockPerk(id, "fast-reload", now)
	require.NoError(t, err)

	replayed, err := svc.Rehydrate(id)
	require.NoError(t, err)

	require.Equal(t, live.TotalXP, replayed.TotalXP)
	require.Equal(t, live.EquippedWeaponName, replayed.EquippedWeaponName)
	require.Equal(t, live.UnlockedPerks, replayed.UnlockedPerks)
	require.Equal(t, live.LastHash, replayed.LastHash)
}

func TestEveryAppendedEventSatisfiesHashChainInvariant(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.Create(id, "Nyx", now)
	require.NoError(t, err)
	_, _, err = svc.GainXP(id, 1, now)
	require.NoError(t, err)
	_, _, err = svc.GainXP(id, 2, now)
	require.NoError(t, err)

	events, err := svc.store.Load(id)
	require.NoError(t, err)

	var prior Event
	for i, e := range events {
		require.Equal(t, e.Hash, e.recompute())
		if i > 0 {
			require.True(t, e.verifyChain(prior))
		} else {
			require.Equal(t, uint64(0), e.Sequence)
			require.Equal(t, "", e.PreviousHash)
		}
		prior = e
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	_, _, err := Create(NewOperatorID(), "   ", time.Now())
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestCreateRejectsZeroID(t *testing.T) {
	_, _, err := Create(NilOperatorID, "Raven", time.Now())
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestFromEventsEmptyStreamFails(t *testing.T) {
	_, err := FromEvents(nil)
	require.ErrorIs(t, err, ErrEmptyOrCorruptStream)
}

func TestChangeLoadoutIllegalDuringInfil(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Now()

	_, _, err := svc.Create(id, "Talon", now)
	require.NoError(t, err)
	_, _, err = svc.ChangeLoadout(id, "rifle-a", now)
	require.NoError(t, err)
	_, _, err = svc.StartInfil(id, now)
	require.NoError(t, err)

	_, _, err = svc.ChangeLoadout(id, "rifle-b", now)
	require.ErrorIs(t, err, ErrPhaseViolation)
}

func TestPetActionIllegalDuringInfil(t *testing.T) {
	svc, id := newTestService(t)
	now := time.Now()

	_, _, err := svc.Create(id, "Sable", now)
	require.NoError(t, err)
	_, _, err = svc.StartInfil(id, now)
	require.NoError(t, err)

	_, _, err = svc.ApplyPetAction(id, pet.Rest(time.Hour), now)
	require.ErrorIs(t, err, ErrPhaseViolation)
}

func TestConcurrentAppendConflictRejectsStaleHash(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)
	id := NewOperatorID()
	now := time.Now()

	_, _, err := svc.Create(id, "Echo", now)
	require.NoError(t, err)

	op, err := svc.Rehydrate(id)
	require.NoError(t, err)
	staleHash := op.LastHash

	_, _, err = svc.GainXP(id, 1, now)
	require.NoError(t, err)

	// Simulate a second writer that loaded the aggregate before the first
	// append landed: it tries to append against the now-stale hash.
	err = store.Append(id, newEvent(id, 1, EventXPGained, XPGainedPayload{Amount: 2}, staleHash, now), staleHash)
	require.ErrorIs(t, err, ErrConcurrencyConflict)
}

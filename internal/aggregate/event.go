package aggregate

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"
)

// EventType enumerates the operator lifecycle event kinds (spec §3). Mirrors
// the teacher's EventType/String() pairing in internal/game/event.go.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventOperatorCreated
	EventXPGained
	EventWoundsTreated
	EventLoadoutChanged
	EventPerkUnlocked
	EventInfilStarted
	EventInfilEnded
	EventCombatSessionStarted
	EventExfilSucceeded
	EventExfilFailed
	EventOperatorDied
	EventPetActionApplied
)

// String returns a human-readable event type, used in logs and in the hash
// preimage so the chain is sensitive to the discriminator, not just a raw
// numeric tag that a payload-only diff could silently shift.
func (t EventType) String() string {
	switch t {
	case EventOperatorCreated:
		return "OperatorCreated"
	case EventXPGained:
		return "XpGained"
	case EventWoundsTreated:
		return "WoundsTreated"
	case EventLoadoutChanged:
		return "LoadoutChanged"
	case EventPerkUnlocked:
		return "PerkUnlocked"
	case EventInfilStarted:
		return "InfilStarted"
	case EventInfilEnded:
		return "InfilEnded"
	case EventCombatSessionStarted:
		return "CombatSessionStarted"
	case EventExfilSucceeded:
		return "ExfilSucceeded"
	case EventExfilFailed:
		return "ExfilFailed"
	case EventOperatorDied:
		return "OperatorDied"
	case EventPetActionApplied:
		return "PetActionApplied"
	default:
		return "Unknown"
	}
}

// Event is an immutable, append-only, hash-chained operator lifecycle
// record (spec §3, "OperatorEvent").
type Event struct {
	OperatorID   OperatorID `json:"operatorId"`
	Sequence     uint64     `json:"sequence"`
	Type         EventType  `json:"eventType"`
	Payload      []byte     `json:"payload"`
	PreviousHash string     `json:"previousHash"`
	Hash         string     `json:"hash"`
	Timestamp    time.Time  `json:"timestamp"`
}

// Payload shapes. Each is JSON-encoded into Event.Payload.

type OperatorCreatedPayload struct {
	Name string `json:"name"`
}

type XPGainedPayload struct {
	Amount int `json:"amount"`
}

type WoundsTreatedPayload struct {
	Restored int `json:"restored"`
}

type LoadoutChangedPayload struct {
	WeaponName string `json:"weaponName"`
}

type PerkUnlockedPayload struct {
	PerkName string `json:"perkName"`
}

type InfilStartedPayload struct {
	SessionID     SessionID `json:"sessionId"`
	LockedLoadout string    `json:"lockedLoadout"`
	StartTime     time.Time `json:"startTime"`
}

type InfilEndedPayload struct {
	Successful bool   `json:"successful"`
	Reason     string `json:"reason"`
}

type CombatSessionStartedPayload struct {
	SessionID SessionID `json:"sessionId"`
}

type OperatorDiedPayload struct {
	Cause string `json:"cause"`
}

type PetActionAppliedPayload struct {
	InputKind  uint8   `json:"inputKind"`
	Nutrition  float64 `json:"nutrition,omitempty"`
	Hydration  float64 `json:"hydration,omitempty"`
	RestHours  float64 `json:"restHours,omitempty"`
	StressLoad float64 `json:"stressLoad,omitempty"`
	InjuryRisk float64 `json:"injuryRisk,omitempty"`
}

// decodePayload unmarshals an event's JSON payload into dst.
func decodePayload(payload []byte, dst interface{}) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, dst)
}

// encodePayload marshals a payload to JSON bytes, mirroring the teacher's
// EncodePayload helper in internal/game/event.go.
func encodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// computeHash reproduces spec §3's hash formula:
//
//	hash = SHA256(operator_id | sequence | event_type | payload | previous_hash)
//
// formatted as lowercase hex. The operator id (16 bytes) and sequence
// (8 bytes, big-endian) are fixed-width; the event type name, payload and
// previous hash follow back to back with no length prefixes.
func computeHash(operatorID OperatorID, sequence uint64, eventType EventType, payload []byte, previousHash string) string {
	h := sha256.New()
	h.Write(operatorID[:])

	var seqBuf [8]byte
	binary.BigEndian.PutUint64(seqBuf[:], sequence)
	h.Write(seqBuf[:])

	h.Write([]byte(eventType.String()))
	h.Write(payload)
	h.Write([]byte(previousHash))

	return hex.EncodeToString(h.Sum(nil))
}

// newEvent builds and hashes an Event given the prior event's hash (empty
// string for sequence 0).
func newEvent(operatorID OperatorID, sequence uint64, eventType EventType, payload interface{}, previousHash string, now time.Time) Event {
	encoded := encodePayload(payload)
	return Event{
		OperatorID:   operatorID,
		Sequence:     sequence,
		Type:         eventType,
		Payload:      encoded,
		PreviousHash: previousHash,
		Hash:         computeHash(operatorID, sequence, eventType, encoded, previousHash),
		Timestamp:    now,
	}
}

// recompute returns the hash this event *should* have, given its own
// fields. Used by rehydrate to detect tampering (spec §4.8 step 1).
func (e Event) recompute() string {
	return computeHash(e.OperatorID, e.Sequence, e.Type, e.Payload, e.PreviousHash)
}

// verifyChain checks that e legitimately follows prior in the hash chain:
// sequence continuity and previous-hash linkage (spec §4.8 step 1).
func (e Event) verifyChain(prior Event) bool {
	return e.Sequence == prior.Sequence+1 && e.PreviousHash == prior.Hash
}

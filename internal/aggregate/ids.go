package aggregate

import "github.com/google/uuid"

// OperatorID is the opaque, non-empty 128-bit identifier for an operator
// aggregate (spec §3, "OperatorId"). It is backed by google/uuid so value
// equality, string round-tripping, and zero-value detection all come from
// a well-audited library instead of a hand-rolled byte array.
type OperatorID uuid.UUID

// NilOperatorID is the zero value; IsZero reports whether an OperatorID was
// never assigned.
var NilOperatorID OperatorID

// NewOperatorID generates a fresh random operator identifier.
func NewOperatorID() OperatorID {
	return OperatorID(uuid.New())
}

// ParseOperatorID parses the canonical string form of an operator id.
func ParseOperatorID(s string) (OperatorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilOperatorID, err
	}
	return OperatorID(id), nil
}

// String returns the canonical hyphenated hex representation.
func (id OperatorID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the id is the unset zero value.
func (id OperatorID) IsZero() bool {
	return id == NilOperatorID
}

// SessionID identifies a single infil or combat session. Reuses the same
// uuid backing as OperatorID since both are opaque value-equal identifiers.
type SessionID uuid.UUID

// NilSessionID is the zero/unset session id.
var NilSessionID SessionID

// NewSessionID generates a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// String returns the canonical hyphenated hex representation.
func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the id is the unset zero value.
func (id SessionID) IsZero() bool {
	return id == NilSessionID
}

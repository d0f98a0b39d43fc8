package combat

import "errors"

var (
	ErrWrongPhase      = errors.New("combat: operation illegal in current phase")
	ErrUnknownOperator = errors.New("combat: unknown operator id")
	ErrOperatorDead    = errors.New("combat: operator is dead")
)

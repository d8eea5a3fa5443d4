package ops

import "errors"

var (
	// ErrUnknownOp is returned when no rule is registered for an operation.
	ErrUnknownOp = errors.New("ops: unknown operation")

	// ErrShape is returned when an operation's input does not fit its
	// parameters, e.g. a Map with fewer functions than input elements.
	ErrShape = errors.New("ops: shape mismatch")
)

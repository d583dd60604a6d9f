package nbody

import (
	"errors"
	"fmt"
)

// Domain errors for body and world operations.
var (
	// ErrInvalidBody indicates a body with non-positive radius or density,
	// or a non-finite position or velocity.
	ErrInvalidBody = errors.New("nbody: invalid body")

	// ErrUnknownPolicy indicates a collision policy name that is not registered.
	ErrUnknownPolicy = errors.New("nbody: unknown collision policy")

	// ErrUnknownScheme indicates an integration scheme name that is not registered.
	ErrUnknownScheme = errors.New("nbody: unknown integration scheme")
)

// BodyError wraps a body validation failure with the body's index.
type BodyError struct {
	Index   int
	Reason  string
	Wrapped error
}

func (e *BodyError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Wrapped, e.Reason)
	}
	return fmt.Sprintf("%s %d: %s", e.Wrapped, e.Index, e.Reason)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}

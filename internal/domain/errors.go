package domain

import (
	"errors"
	"fmt"
)

// MsgNoIncidentAttached is the message returned by every operation that
// requires an attached session when none exists.
const MsgNoIncidentAttached = "No incident attached. Use 'attach' first."

var (
	// ErrNotFound indicates the requested incident id does not exist.
	ErrNotFound = errors.New("Incident not found")

	// ErrNoSessionAttached indicates an operation required an attached
	// session but the session pointer is absent.
	ErrNoSessionAttached = errors.New(MsgNoIncidentAttached)
)

// IllegalTransitionError is returned by the state machine when the
// requested target state is not reachable from the current state.
type IllegalTransitionError struct {
	From IncidentState
	To   IncidentState
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("Illegal transition from %s to %s", e.From, e.To)
}

// IsIllegalTransition reports whether err is an IllegalTransitionError.
func IsIllegalTransition(err error) bool {
	var ite *IllegalTransitionError
	return errors.As(err, &ite)
}

package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransition        = errors.New("no transition available")
	ErrDuplicateTransition = errors.New("conflicting transition")
)

// NoTransitionError indicates the event is not defined for the current state.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

func (e *NoTransitionError) Is(target error) bool {
	return target == ErrNoTransition
}

// IsNoTransition reports whether err means the event was not applicable.
func IsNoTransition(err error) bool {
	return errors.Is(err, ErrNoTransition)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the store has no record for a session id.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidInput is returned for a missing session id or an empty
	// message, before any state is touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionEnded is returned when a turn is submitted to a session
	// that already reached its terminal state.
	ErrSessionEnded = errors.New("session has ended")

	// ErrMalformedOutput marks a backend response that does not conform
	// to the requested structure. Distinguishable from transport errors
	// so the supervisor knows a retry may help.
	ErrMalformedOutput = errors.New("malformed backend output")
)

// RoutingError means the supervisor could not produce a conforming
// classification. The turn aborts with only the user message recorded.
type RoutingError struct {
	Cause error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("could not determine how to handle the request: %v", e.Cause)
}

func (e *RoutingError) Unwrap() error { return e.Cause }

// GenerationError means a role builder's remote call failed. Same
// rollback semantics as RoutingError.
type GenerationError struct {
	Role  RoutingDecision
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Role, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

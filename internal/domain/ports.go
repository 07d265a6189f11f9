package domain

import "context"

// Generator produces free text from a single input. Implementations
// carry their own system instruction; input is just the per-call
// payload.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// RouterBackend asks a model to classify one user message into the
// routing enumeration. A non-conforming model response is reported with
// an error wrapping ErrMalformedOutput; transport and auth failures
// come back as-is.
type RouterBackend interface {
	Classify(ctx context.Context, message string) (RoutingDecision, error)
}

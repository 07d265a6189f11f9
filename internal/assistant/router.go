package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/careerpilot/careerpilot/internal/domain"
)

// Router classifies the latest user message into a routing decision.
// It inspects only that message, never the conversation history: the
// classification prompt stays short and focused on current intent.
type Router struct {
	backend domain.RouterBackend
}

func NewRouter(backend domain.RouterBackend) *Router {
	return &Router{backend: backend}
}

// Route returns exactly one decision. A malformed backend reply is
// retried once; a second failure (or any transport failure) surfaces
// as a RoutingError. An empty message classifies as End rather than
// erroring.
func (r *Router) Route(ctx context.Context, latestUserMessage string) (domain.RoutingDecision, error) {
	if strings.TrimSpace(latestUserMessage) == "" {
		return domain.RouteEnd, nil
	}

	decision, err := r.backend.Classify(ctx, latestUserMessage)
	if errors.Is(err, domain.ErrMalformedOutput) {
		decision, err = r.backend.Classify(ctx, latestUserMessage)
	}
	if err != nil {
		return "", &domain.RoutingError{Cause: err}
	}
	return decision, nil
}

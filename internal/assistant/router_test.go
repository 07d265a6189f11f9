package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/careerpilot/careerpilot/internal/domain"
)

// stubBackend classifies by keyword and can be programmed to fail a
// number of times before succeeding.
type stubBackend struct {
	decision     domain.RoutingDecision
	malformed    int // malformed failures to emit before succeeding
	transportErr error
	calls        int
}

func (s *stubBackend) Classify(ctx context.Context, message string) (domain.RoutingDecision, error) {
	s.calls++
	if s.transportErr != nil {
		return "", s.transportErr
	}
	if s.malformed > 0 {
		s.malformed--
		return "", fmt.Errorf("%w: not json", domain.ErrMalformedOutput)
	}
	if s.decision != "" {
		return s.decision, nil
	}
	switch {
	case strings.Contains(message, "headline"):
		return domain.RouteContentEnhancer, nil
	case strings.Contains(message, "goodbye"):
		return domain.RouteEnd, nil
	default:
		return domain.RouteProfileAnalyzer, nil
	}
}

func TestRouteIsDeterministicForSameMessage(t *testing.T) {
	router := NewRouter(&stubBackend{})

	var first domain.RoutingDecision
	for i := 0; i < 5; i++ {
		got, err := router.Route(context.Background(), "How do I improve my headline?")
		if err != nil {
			t.Fatalf("Route returned error: %v", err)
		}
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("Route not deterministic: got %q then %q", first, got)
		}
	}
	if first != domain.RouteContentEnhancer {
		t.Errorf("Expected Content Enhancer, got %q", first)
	}
}

func TestRouteEmptyMessageFallsBackToEnd(t *testing.T) {
	backend := &stubBackend{}
	router := NewRouter(backend)

	got, err := router.Route(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Route returned error on empty input: %v", err)
	}
	if got != domain.RouteEnd {
		t.Errorf("Expected End for empty message, got %q", got)
	}
	if backend.calls != 0 {
		t.Errorf("Backend should not be called for empty message, got %d calls", backend.calls)
	}
}

func TestRouteRetriesMalformedOutputOnce(t *testing.T) {
	backend := &stubBackend{decision: domain.RouteCareerCounselor, malformed: 1}
	router := NewRouter(backend)

	got, err := router.Route(context.Background(), "What skills should I learn?")
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if got != domain.RouteCareerCounselor {
		t.Errorf("Expected Career Counselor, got %q", got)
	}
	if backend.calls != 2 {
		t.Errorf("Expected 2 backend calls, got %d", backend.calls)
	}
}

func TestRouteFailsAfterSecondMalformedOutput(t *testing.T) {
	backend := &stubBackend{malformed: 2}
	router := NewRouter(backend)

	_, err := router.Route(context.Background(), "anything")
	if err == nil {
		t.Fatal("Expected error after two malformed replies")
	}
	var routingErr *domain.RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Expected RoutingError, got %T: %v", err, err)
	}
	if !errors.Is(err, domain.ErrMalformedOutput) {
		t.Errorf("Expected wrapped ErrMalformedOutput, got %v", err)
	}
	if backend.calls != 2 {
		t.Errorf("Expected exactly 2 backend calls, got %d", backend.calls)
	}
}

func TestRouteDoesNotRetryTransportErrors(t *testing.T) {
	backend := &stubBackend{transportErr: errors.New("connection refused")}
	router := NewRouter(backend)

	_, err := router.Route(context.Background(), "anything")
	var routingErr *domain.RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Expected RoutingError, got %T: %v", err, err)
	}
	if backend.calls != 1 {
		t.Errorf("Transport failures must not be retried, got %d calls", backend.calls)
	}
}

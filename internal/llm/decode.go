package llm

import (
	"encoding/json"
	"fmt"

	"github.com/careerpilot/careerpilot/internal/domain"
)

// routeChoice is the JSON object both backends ask the model to emit
// for a routing classification.
type routeChoice struct {
	NextAgent string `json:"next_agent"`
}

// decodeDecision parses a model reply into a routing decision. Any
// nonconforming reply is reported as domain.ErrMalformedOutput so the
// supervisor can retry once.
func decodeDecision(raw string) (domain.RoutingDecision, error) {
	var choice routeChoice
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &choice); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}
	decision, ok := domain.ParseRoutingDecision(choice.NextAgent)
	if !ok {
		return "", fmt.Errorf("%w: unknown agent %q", domain.ErrMalformedOutput, choice.NextAgent)
	}
	return decision, nil
}

// routingEnum lists the values the model is constrained to.
func routingEnum() []string {
	values := make([]string, 0, 5)
	for _, d := range domain.RoleDecisions() {
		values = append(values, string(d))
	}
	return append(values, string(domain.RouteEnd))
}

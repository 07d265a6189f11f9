package llm

import (
	"errors"
	"testing"

	"github.com/careerpilot/careerpilot/internal/domain"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"next_agent": "End"}`, `{"next_agent": "End"}`},
		{"json fence", "```json\n{\"next_agent\": \"End\"}\n```", `{"next_agent": "End"}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"fence with crlf", "```json\r\n{\"a\": 1}\r\n```", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSON(tt.input); got != tt.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeDecision(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.RoutingDecision
	}{
		{"profile analyzer", `{"next_agent": "Profile Analyzer"}`, domain.RouteProfileAnalyzer},
		{"job fit analyzer", `{"next_agent": "Job Fit Analyzer"}`, domain.RouteJobFitAnalyzer},
		{"content enhancer", `{"next_agent": "Content Enhancer"}`, domain.RouteContentEnhancer},
		{"career counselor", `{"next_agent": "Career Counselor"}`, domain.RouteCareerCounselor},
		{"end", `{"next_agent": "End"}`, domain.RouteEnd},
		{"end alias", `{"next_agent": "__end__"}`, domain.RouteEnd},
		{"fenced", "```json\n{\"next_agent\": \"Career Counselor\"}\n```", domain.RouteCareerCounselor},
		{"case insensitive", `{"next_agent": "profile analyzer"}`, domain.RouteProfileAnalyzer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDecision(tt.raw)
			if err != nil {
				t.Fatalf("decodeDecision(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("decodeDecision(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeDecisionMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I think the Profile Analyzer should handle this"},
		{"unknown agent", `{"next_agent": "Salary Negotiator"}`},
		{"empty object", `{}`},
		{"empty string", ""},
		{"wrong field", `{"agent": "End"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDecision(tt.raw)
			if !errors.Is(err, domain.ErrMalformedOutput) {
				t.Errorf("decodeDecision(%q) error = %v, want ErrMalformedOutput", tt.raw, err)
			}
		})
	}
}

func TestRoutingEnumContainsAllDecisions(t *testing.T) {
	values := routingEnum()
	if len(values) != 5 {
		t.Fatalf("Expected 5 enum values, got %d: %v", len(values), values)
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	for _, want := range []domain.RoutingDecision{
		domain.RouteProfileAnalyzer,
		domain.RouteJobFitAnalyzer,
		domain.RouteContentEnhancer,
		domain.RouteCareerCounselor,
		domain.RouteEnd,
	} {
		if !seen[string(want)] {
			t.Errorf("Enum missing %q", want)
		}
	}
}

package domain

import "strings"

// RoutingDecision is the closed set of outcomes the supervisor can pick
// for a turn: one of the four specialist roles, or End to finish the
// session.
type RoutingDecision string

const (
	RouteProfileAnalyzer RoutingDecision = "Profile Analyzer"
	RouteJobFitAnalyzer  RoutingDecision = "Job Fit Analyzer"
	RouteContentEnhancer RoutingDecision = "Content Enhancer"
	RouteCareerCounselor RoutingDecision = "Career Counselor"
	RouteEnd             RoutingDecision = "End"
)

// RoleDecisions lists the decisions that map to a specialist role,
// excluding End.
func RoleDecisions() []RoutingDecision {
	return []RoutingDecision{
		RouteProfileAnalyzer,
		RouteJobFitAnalyzer,
		RouteContentEnhancer,
		RouteCareerCounselor,
	}
}

// ParseRoutingDecision maps a backend string to a decision. Matching is
// case-insensitive and accepts "__end__" and "end" for RouteEnd, since
// models occasionally echo the classic sentinel spelling.
func ParseRoutingDecision(s string) (RoutingDecision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profile analyzer":
		return RouteProfileAnalyzer, true
	case "job fit analyzer":
		return RouteJobFitAnalyzer, true
	case "content enhancer":
		return RouteContentEnhancer, true
	case "career counselor":
		return RouteCareerCounselor, true
	case "end", "__end__":
		return RouteEnd, true
	}
	return "", false
}

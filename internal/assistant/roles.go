// Package assistant implements the supervisor, the specialist roles,
// and the per-session turn dispatcher.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot/internal/domain"
)

// RoleAgent produces one reply from the stored profile summary and the
// latest user request. Exactly one outbound generation call per
// invocation; implementations do not retry and do not mutate shared
// state.
type RoleAgent interface {
	Run(ctx context.Context, profileSummary, request string) (string, error)
}

// Role binds a RoleSpec to a Generator that carries the role's
// instruction as its system prompt.
type Role struct {
	spec RoleSpec
	gen  domain.Generator
}

func NewRole(spec RoleSpec, gen domain.Generator) *Role {
	return &Role{spec: spec, gen: gen}
}

func (r *Role) Run(ctx context.Context, profileSummary, request string) (string, error) {
	var b strings.Builder
	// A session without a loaded profile still gets a reply; the
	// summary section is simply omitted.
	if strings.TrimSpace(profileSummary) != "" {
		fmt.Fprintf(&b, "Profile summary:\n%s\n\n", profileSummary)
	}
	fmt.Fprintf(&b, "User request:\n%s", request)

	return r.gen.Generate(ctx, b.String())
}

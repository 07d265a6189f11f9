package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/careerpilot/careerpilot/internal/domain"
)

const defaultAnthropicModel = anthropic.ModelClaude3_7SonnetLatest

// Anthropic is the alternate provider. The SDK client reads
// ANTHROPIC_API_KEY from the environment.
type Anthropic struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropic(model string) *Anthropic {
	c := anthropic.NewClient()
	m := defaultAnthropicModel
	if model != "" {
		m = anthropic.Model(model)
	}
	return &Anthropic{client: &c, model: m}
}

// Generator returns a plain-text generator bound to a system prompt.
func (a *Anthropic) Generator(system string) domain.Generator {
	return &anthropicGenerator{a: a, system: system}
}

type anthropicGenerator struct {
	a      *Anthropic
	system string
}

func (ag *anthropicGenerator) Generate(ctx context.Context, input string) (string, error) {
	return ag.a.complete(ctx, ag.system, input)
}

func (a *Anthropic) complete(ctx context.Context, system, input string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(1024),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if t, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(t.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("empty anthropic response")
	}
	return sb.String(), nil
}

// RouterBackend classifies through a strict-JSON prompt. Anthropic has
// no enum-constrained output mode, so conformance is checked after the
// fact and a nonconforming reply is reported as malformed output.
func (a *Anthropic) RouterBackend(instruction string) domain.RouterBackend {
	return &anthropicRouter{a: a, instruction: instruction}
}

type anthropicRouter struct {
	a           *Anthropic
	instruction string
}

func (ar *anthropicRouter) Classify(ctx context.Context, message string) (domain.RoutingDecision, error) {
	raw, err := ar.a.complete(ctx, ar.instruction, message)
	if err != nil {
		return "", err
	}
	return decodeDecision(raw)
}

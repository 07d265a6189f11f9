package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot/internal/domain"
	"google.golang.org/genai"
)

// Gemini wraps a genai client for plain and schema-constrained
// generation.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generator returns a plain-text generator bound to a system
// instruction.
func (g *Gemini) Generator(system string) domain.Generator {
	return &geminiGenerator{g: g, system: system}
}

type geminiGenerator struct {
	g      *Gemini
	system string
}

func (gg *geminiGenerator) Generate(ctx context.Context, input string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if gg.system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: gg.system}}}
	}
	resp, err := gg.g.client.Models.GenerateContent(ctx, gg.g.model, genai.Text(input), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}

// RouterBackend returns a classifier whose output is constrained to
// the routing enumeration by a JSON response schema. The model cannot
// answer outside the enum; anything that still fails to decode counts
// as malformed output.
func (g *Gemini) RouterBackend(instruction string) domain.RouterBackend {
	return &geminiRouter{g: g, instruction: instruction}
}

type geminiRouter struct {
	g           *Gemini
	instruction string
}

func (gr *geminiRouter) Classify(ctx context.Context, message string) (domain.RoutingDecision, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: gr.instruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"next_agent": {Type: genai.TypeString, Enum: routingEnum()},
			},
			Required: []string{"next_agent"},
		},
	}
	resp, err := gr.g.client.Models.GenerateContent(ctx, gr.g.model, genai.Text(message), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini classify: %w", err)
	}
	return decodeDecision(resp.Text())
}

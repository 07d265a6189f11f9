package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// AgentRunner executes a single ADK llm agent with a fixed role
// instruction. Each Generate call runs inside a throwaway agent
// session that is deleted afterwards; conversation history lives in
// our own checkpoint store, not in ADK.
type AgentRunner struct {
	appName  string
	runner   *runner.Runner
	sessions session.Service
}

func NewAgentRunner(ctx context.Context, apiKey, modelName, name, description, instruction string) (*AgentRunner, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	ag, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       model,
		Description: description,
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        name,
		Agent:          ag,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &AgentRunner{appName: name, runner: r, sessions: sessions}, nil
}

func (a *AgentRunner) Generate(ctx context.Context, input string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    uuid.NewString(),
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		_ = a.sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: input},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent stream: %w", err)
		}
		if event != nil && event.IsFinalResponse() && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if strings.TrimSpace(output) == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}

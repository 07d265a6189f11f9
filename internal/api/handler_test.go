package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerpilot/careerpilot/internal/assistant"
	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/careerpilot/careerpilot/internal/profile"
	"github.com/careerpilot/careerpilot/internal/store"
)

type fixedBackend struct {
	decision domain.RoutingDecision
	err      error
}

func (b *fixedBackend) Classify(ctx context.Context, message string) (domain.RoutingDecision, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.decision, nil
}

type fixedRole struct {
	reply string
	err   error
}

func (r *fixedRole) Run(ctx context.Context, profileSummary, request string) (string, error) {
	return r.reply, r.err
}

type echoGenerator struct{}

func (echoGenerator) Generate(ctx context.Context, input string) (string, error) {
	return "summary", nil
}

func newTestServer(t *testing.T, backend domain.RouterBackend, roles map[domain.RoutingDecision]assistant.RoleAgent) *httptest.Server {
	t.Helper()
	svc := assistant.NewService(
		store.NewMemory(),
		assistant.NewRouter(backend),
		roles,
		profile.NewSummarizer(echoGenerator{}),
		nil,
		nil,
	)
	server := httptest.NewServer(NewHandler(svc).Routes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/sessions", map[string]string{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, resp, &created)
	if created.SessionID == "" {
		t.Fatal("Expected a session id")
	}
	return created.SessionID
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, &fixedBackend{}, nil)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestCreateSessionWithProfileText(t *testing.T) {
	server := newTestServer(t, &fixedBackend{}, nil)

	resp := postJSON(t, server.URL+"/api/sessions", map[string]string{
		"profile_text": "Senior backend engineer, 8 years, Go and distributed systems",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		SessionID string        `json:"session_id"`
		Status    domain.Status `json:"status"`
	}
	decodeBody(t, resp, &created)
	if created.Status != domain.StatusActive {
		t.Errorf("Expected active status, got %q", created.Status)
	}
}

func TestCreateSessionRejectsMultipleSources(t *testing.T) {
	server := newTestServer(t, &fixedBackend{}, nil)

	resp := postJSON(t, server.URL+"/api/sessions", map[string]string{
		"profile_text": "text",
		"linkedin_url": "https://linkedin.com/in/jane-doe",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestSubmitMessageFullTurn(t *testing.T) {
	server := newTestServer(t,
		&fixedBackend{decision: domain.RouteContentEnhancer},
		map[domain.RoutingDecision]assistant.RoleAgent{
			domain.RouteContentEnhancer: &fixedRole{reply: "Try a sharper headline."},
		},
	)
	id := createSession(t, server)

	resp := postJSON(t, server.URL+"/api/sessions/"+id+"/messages", map[string]string{
		"text": "How do I improve my headline?",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var turn struct {
		Ended bool            `json:"ended"`
		Role  string          `json:"role"`
		Reply *domain.Message `json:"reply"`
	}
	decodeBody(t, resp, &turn)
	if turn.Ended {
		t.Error("Turn should not end the session")
	}
	if turn.Role != string(domain.RouteContentEnhancer) {
		t.Errorf("Expected Content Enhancer role, got %q", turn.Role)
	}
	if turn.Reply == nil || turn.Reply.Text != "Try a sharper headline." {
		t.Errorf("Unexpected reply: %+v", turn.Reply)
	}

	// Transcript shows both messages in order.
	getResp, err := http.Get(server.URL + "/api/sessions/" + id)
	if err != nil {
		t.Fatalf("GET session failed: %v", err)
	}
	var session struct {
		Status   domain.Status    `json:"status"`
		Messages []domain.Message `json:"messages"`
	}
	decodeBody(t, getResp, &session)
	if len(session.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(session.Messages))
	}
	if session.Messages[0].Author != domain.AuthorUser || session.Messages[1].Author != domain.AuthorAssistant {
		t.Errorf("Unexpected transcript order: %v, %v", session.Messages[0].Author, session.Messages[1].Author)
	}
}

func TestSubmitMessageEndsSession(t *testing.T) {
	server := newTestServer(t, &fixedBackend{decision: domain.RouteEnd}, nil)
	id := createSession(t, server)

	resp := postJSON(t, server.URL+"/api/sessions/"+id+"/messages", map[string]string{
		"text": "goodbye",
	})
	var turn struct {
		Ended bool            `json:"ended"`
		Reply *domain.Message `json:"reply"`
	}
	decodeBody(t, resp, &turn)
	if !turn.Ended {
		t.Error("Expected ended turn")
	}
	if turn.Reply != nil {
		t.Errorf("End turn must not carry a reply, got %+v", turn.Reply)
	}

	// Further turns conflict with the terminal state.
	resp = postJSON(t, server.URL+"/api/sessions/"+id+"/messages", map[string]string{
		"text": "hello?",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for an ended session, got %d", resp.StatusCode)
	}
}

func TestSubmitMessageErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		backend    domain.RouterBackend
		roles      map[domain.RoutingDecision]assistant.RoleAgent
		text       string
		wantStatus int
	}{
		{
			name:       "empty text",
			backend:    &fixedBackend{},
			text:       "   ",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "routing failure",
			backend:    &fixedBackend{err: fmt.Errorf("%w: garbage", domain.ErrMalformedOutput)},
			text:       "do something",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:    "generation failure",
			backend: &fixedBackend{decision: domain.RouteCareerCounselor},
			roles: map[domain.RoutingDecision]assistant.RoleAgent{
				domain.RouteCareerCounselor: &fixedRole{err: fmt.Errorf("model unavailable")},
			},
			text:       "What skills should I learn?",
			wantStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.backend, tt.roles)
			id := createSession(t, server)

			resp := postJSON(t, server.URL+"/api/sessions/"+id+"/messages", map[string]string{
				"text": tt.text,
			})
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	server := newTestServer(t, &fixedBackend{}, nil)

	resp, err := http.Get(server.URL + "/api/sessions/6a9c7e4e-9a74-4e29-b9a1-07a0f1a0a001")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestInvalidSessionIDReturns400(t *testing.T) {
	server := newTestServer(t, &fixedBackend{}, nil)

	resp, err := http.Get(server.URL + "/api/sessions/not-a-uuid")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

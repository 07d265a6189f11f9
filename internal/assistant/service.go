package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/careerpilot/careerpilot/internal/profile"
	"github.com/careerpilot/careerpilot/internal/store"
	"github.com/google/uuid"
)

// IngestQueue enqueues asynchronous profile-loading jobs. Satisfied by
// the AMQP publisher; nil when ingestion is not configured.
type IngestQueue interface {
	EnqueueIngest(ctx context.Context, job domain.IngestJob) error
}

// Service drives the per-turn state machine: it appends the user
// message, asks the Router for exactly one decision, runs at most one
// role builder, and checkpoints the conversation after every durable
// step. All state mutation happens here; routers and roles stay pure.
type Service struct {
	store      store.Store
	router     *Router
	roles      map[domain.RoutingDecision]RoleAgent
	summarizer *profile.Summarizer
	queue      IngestQueue
	log        *slog.Logger
	now        func() time.Time

	// Turns for the same session never interleave. The durable store
	// only promises per-key write consistency, so the ordering
	// guarantee lives here. Shared with the ingest workers so a
	// finishing ingestion cannot race a concurrent turn.
	locks *domain.SessionLocks
}

func NewService(
	st store.Store,
	router *Router,
	roles map[domain.RoutingDecision]RoleAgent,
	summarizer *profile.Summarizer,
	queue IngestQueue,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:      st,
		router:     router,
		roles:      roles,
		summarizer: summarizer,
		queue:      queue,
		log:        log,
		now:        time.Now,
		locks:      domain.NewSessionLocks(),
	}
}

// Locks exposes the per-session lock registry so the ingest worker
// pool can coordinate with the dispatcher.
func (s *Service) Locks() *domain.SessionLocks {
	return s.locks
}

// StartSessionInput selects at most one profile source. ProfileText is
// summarized inline; LinkedInURL and ResumeKey go through the
// ingestion queue.
type StartSessionInput struct {
	ProfileText string
	LinkedInURL string
	ResumeKey   string
	ResumeMime  string
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*domain.Conversation, error) {
	sources := 0
	for _, set := range []bool{in.ProfileText != "", in.LinkedInURL != "", in.ResumeKey != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("%w: provide at most one profile source", domain.ErrInvalidInput)
	}
	if in.LinkedInURL != "" {
		if err := profile.ValidateLinkedInURL(in.LinkedInURL); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	if (in.LinkedInURL != "" || in.ResumeKey != "") && s.queue == nil {
		return nil, fmt.Errorf("%w: profile ingestion is not configured", domain.ErrInvalidInput)
	}

	now := s.now()
	conv := &domain.Conversation{
		ID:        uuid.New(),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	log := s.log.With("session_id", conv.ID)

	if in.ProfileText != "" {
		summary, err := s.summarizer.Summarize(ctx, in.ProfileText)
		if err != nil {
			log.Error("profile summarization failed", "error", err)
			return nil, err
		}
		conv.ProfileSummary = summary
	}
	if in.LinkedInURL != "" || in.ResumeKey != "" {
		conv.Status = domain.StatusPending
	}

	if err := s.store.Create(ctx, conv); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	if conv.Status == domain.StatusPending {
		job := domain.IngestJob{
			SessionID:   conv.ID,
			LinkedInURL: in.LinkedInURL,
			ObjectKey:   in.ResumeKey,
			Mime:        in.ResumeMime,
		}
		if err := s.queue.EnqueueIngest(ctx, job); err != nil {
			log.Error("failed to enqueue ingest job", "error", err)
			conv.Status = domain.StatusFailed
			conv.UpdatedAt = s.now()
			if saveErr := s.store.Save(ctx, conv); saveErr != nil {
				log.Error("failed to mark session failed", "error", saveErr)
			}
			return nil, fmt.Errorf("enqueue profile ingestion: %w", err)
		}
	}

	log.Info("session started", "status", conv.Status)
	return conv, nil
}

// TurnResult is the outcome of one completed turn.
type TurnResult struct {
	// Reply is the appended assistant message; nil when the session
	// ended this turn.
	Reply *domain.Message
	// Role is the decision that produced the reply, or RouteEnd.
	Role  domain.RoutingDecision
	Ended bool
}

// SubmitUserMessage processes exactly one turn end-to-end. On any
// failure after the user message is appended, the checkpoint holds the
// prior messages plus that user message and nothing else; no partial
// assistant reply is ever persisted.
func (s *Service) SubmitUserMessage(ctx context.Context, sessionID uuid.UUID, text string) (*TurnResult, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing session id", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}

	lock := s.locks.Get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	log := s.log.With("session_id", sessionID)

	conv, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv.Status == domain.StatusEnded {
		return nil, fmt.Errorf("turn rejected: %w", domain.ErrSessionEnded)
	}

	now := s.now()
	userMsg := domain.Message{
		ID:        uuid.New(),
		Author:    domain.AuthorUser,
		Text:      text,
		CreatedAt: now,
	}
	conv.Messages = append(conv.Messages, userMsg)
	conv.UpdatedAt = now

	// Checkpoint before routing so the user message survives a failed
	// turn and a retry does not need to re-send it.
	if err := s.store.Save(ctx, conv); err != nil {
		log.Error("failed to checkpoint user message", "error", err)
		return nil, fmt.Errorf("checkpoint user message: %w", err)
	}

	decision, err := s.router.Route(ctx, conv.LatestUserMessage())
	if err != nil {
		log.Error("routing failed", "error", err)
		return nil, err
	}
	log.Info("routed turn", "decision", decision)

	if decision == domain.RouteEnd {
		conv.Status = domain.StatusEnded
		conv.UpdatedAt = s.now()
		if err := s.store.Save(ctx, conv); err != nil {
			log.Error("failed to checkpoint ended session", "error", err)
			return nil, fmt.Errorf("checkpoint ended session: %w", err)
		}
		return &TurnResult{Role: domain.RouteEnd, Ended: true}, nil
	}

	role, ok := s.roles[decision]
	if !ok {
		return nil, &domain.RoutingError{Cause: fmt.Errorf("no builder registered for %q", decision)}
	}

	reply, err := role.Run(ctx, conv.ProfileSummary, userMsg.Text)
	if err != nil {
		log.Error("role builder failed", "role", decision, "error", err)
		return nil, &domain.GenerationError{Role: decision, Cause: err}
	}

	assistantMsg := domain.Message{
		ID:        uuid.New(),
		Author:    domain.AuthorAssistant,
		Text:      reply,
		CreatedAt: s.now(),
	}
	conv.Messages = append(conv.Messages, assistantMsg)
	conv.UpdatedAt = assistantMsg.CreatedAt

	if err := s.store.Save(ctx, conv); err != nil {
		log.Error("failed to checkpoint assistant message", "error", err)
		return nil, fmt.Errorf("checkpoint assistant message: %w", err)
	}

	log.Info("turn completed", "role", decision)
	return &TurnResult{Reply: &assistantMsg, Role: decision}, nil
}

// GetSession reads the current conversation state. Works for Ended
// sessions too.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.Conversation, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing session id", domain.ErrInvalidInput)
	}
	return s.store.Load(ctx, sessionID)
}

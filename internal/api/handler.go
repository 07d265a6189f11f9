// Package api exposes the turn API over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careerpilot/careerpilot/internal/assistant"
	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Handler maps HTTP requests onto the assistant service.
type Handler struct {
	svc *assistant.Service
}

func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes builds the chi router for the API surface.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/{sessionID}", h.getSession)
		r.Post("/{sessionID}/messages", h.submitMessage)
	})
	return r
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	ProfileText string `json:"profile_text,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	ResumeKey   string `json:"resume_key,omitempty"`
	ResumeMime  string `json:"resume_mime,omitempty"`
}

type sessionResponse struct {
	SessionID      string           `json:"session_id"`
	Status         domain.Status    `json:"status"`
	ProfileSummary string           `json:"profile_summary,omitempty"`
	Messages       []domain.Message `json:"messages,omitempty"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.svc.StartSession(r.Context(), assistant.StartSessionInput{
		ProfileText: req.ProfileText,
		LinkedInURL: req.LinkedInURL,
		ResumeKey:   req.ResumeKey,
		ResumeMime:  req.ResumeMime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, sessionResponse{
		SessionID: conv.ID.String(),
		Status:    conv.Status,
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid session id")
		return
	}

	conv, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, sessionResponse{
		SessionID:      conv.ID.String(),
		Status:         conv.Status,
		ProfileSummary: conv.ProfileSummary,
		Messages:       conv.Messages,
	})
}

type submitMessageRequest struct {
	Text string `json:"text"`
}

type turnResponse struct {
	Ended bool            `json:"ended"`
	Role  string          `json:"role,omitempty"`
	Reply *domain.Message `json:"reply,omitempty"`
}

func (h *Handler) submitMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitUserMessage(r.Context(), id, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, turnResponse{
		Ended: result.Ended,
		Role:  string(result.Role),
		Reply: result.Reply,
	})
}

// writeServiceError translates the service error taxonomy into HTTP
// statuses. All of these abort a single turn only; the caller decides
// whether to retry.
func writeServiceError(w http.ResponseWriter, err error) {
	var routingErr *domain.RoutingError
	var generationErr *domain.GenerationError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrSessionEnded):
		Error(w, http.StatusConflict, "session has ended")
	case errors.As(err, &routingErr):
		Error(w, http.StatusBadGateway, "could not determine how to handle your request")
	case errors.As(err, &generationErr):
		Error(w, http.StatusBadGateway, "generation failed, please retry")
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

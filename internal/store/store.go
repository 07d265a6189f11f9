// Package store provides durable checkpointing of conversation state.
package store

import (
	"context"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/google/uuid"
)

// Store persists one conversation per session id. Implementations must
// guarantee per-key consistency: a reader of a session never observes a
// partially written checkpoint. The dispatcher relies on this instead
// of taking its own storage locks.
type Store interface {
	// Create persists a brand new conversation.
	Create(ctx context.Context, conv *domain.Conversation) error

	// Load returns the conversation for id, or an error wrapping
	// domain.ErrNotFound for unseen keys.
	Load(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// Save checkpoints the full conversation atomically.
	Save(ctx context.Context, conv *domain.Conversation) error

	// Close releases the underlying connection.
	Close() error
}

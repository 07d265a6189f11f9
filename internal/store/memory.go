package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps conversations in a map. Used by tests and as a
// throwaway backend for local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[uuid.UUID]*domain.Conversation
}

func NewMemory() *MemoryStore {
	return &MemoryStore{convs: make(map[uuid.UUID]*domain.Conversation)}
}

func (s *MemoryStore) Create(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[conv.ID]; ok {
		return fmt.Errorf("session %s already exists", conv.ID)
	}
	s.convs[conv.ID] = cloneConversation(conv)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	s.mu.RLock()
	conv := s.convs[id]
	s.mu.RUnlock()
	if conv == nil {
		return nil, fmt.Errorf("load session %s: %w", id, domain.ErrNotFound)
	}
	return cloneConversation(conv), nil
}

func (s *MemoryStore) Save(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[conv.ID]; !ok {
		return fmt.Errorf("save session %s: %w", conv.ID, domain.ErrNotFound)
	}
	s.convs[conv.ID] = cloneConversation(conv)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneConversation copies state so callers can mutate their view
// without leaking into the checkpoint.
func cloneConversation(c *domain.Conversation) *domain.Conversation {
	out := *c
	out.Messages = make([]domain.Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

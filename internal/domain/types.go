// Package domain holds the conversation model shared by every layer.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Author identifies who produced a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is one entry in a conversation timeline.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Status describes where a session is in its lifecycle.
type Status string

const (
	// StatusPending means profile ingestion is still running.
	StatusPending Status = "pending"
	// StatusActive means the session accepts turns.
	StatusActive Status = "active"
	// StatusFailed means profile ingestion failed. Turns are still
	// accepted; the builders run with an empty summary.
	StatusFailed Status = "failed"
	// StatusEnded is terminal. Reads still work, turns are rejected.
	StatusEnded Status = "ended"
)

// Conversation is the durable state of one session. Messages are
// append-only: nothing in this module reorders or deletes an entry.
type Conversation struct {
	ID             uuid.UUID `json:"id"`
	Status         Status    `json:"status"`
	ProfileSummary string    `json:"profile_summary"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LatestUserMessage returns the text of the most recent user message.
// The scan walks backwards so consecutive same-author entries are
// tolerated. Returns "" when no user message exists.
func (c *Conversation) LatestUserMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Author == AuthorUser {
			return c.Messages[i].Text
		}
	}
	return ""
}

// IngestJob is a queued request to load profile data into a session.
// Exactly one of LinkedInURL or ObjectKey is set.
type IngestJob struct {
	SessionID   uuid.UUID `json:"session_id"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	ObjectKey   string    `json:"object_key,omitempty"`
	Mime        string    `json:"mime,omitempty"`
}

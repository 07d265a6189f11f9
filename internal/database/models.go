package database

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID             uuid.UUID
	Status         string
	ProfileSummary string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Message struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Position  int32
	Author    string
	Content   string
	CreatedAt time.Time
}

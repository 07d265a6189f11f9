package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/careerpilot/careerpilot/internal/database"
	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore implements Store on Postgres through the generated
// query layer.
type PostgresStore struct {
	db      *sql.DB
	queries *database.Queries
}

func NewPostgres(dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{db: db, queries: database.New(db)}, nil
}

func (s *PostgresStore) Create(ctx context.Context, conv *domain.Conversation) error {
	err := s.queries.CreateSession(ctx, database.Session{
		ID:             conv.ID,
		Status:         string(conv.Status),
		ProfileSummary: conv.ProfileSummary,
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if len(conv.Messages) > 0 {
		return s.Save(ctx, conv)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	row, err := s.queries.GetSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	msgs, err := s.queries.GetMessagesBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	conv := &domain.Conversation{
		ID:             row.ID,
		Status:         domain.Status(row.Status),
		ProfileSummary: row.ProfileSummary,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	for _, m := range msgs {
		conv.Messages = append(conv.Messages, domain.Message{
			ID:        m.ID,
			Author:    domain.Author(m.Author),
			Text:      m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return conv, nil
}

func (s *PostgresStore) Save(ctx context.Context, conv *domain.Conversation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)

	n, err := q.UpdateSession(ctx, database.Session{
		ID:             conv.ID,
		Status:         string(conv.Status),
		ProfileSummary: conv.ProfileSummary,
		UpdatedAt:      conv.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save session %s: %w", conv.ID, domain.ErrNotFound)
	}

	if err := q.DeleteMessagesFrom(ctx, conv.ID, 0); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	for i, msg := range conv.Messages {
		if err := q.CreateMessage(ctx, database.Message{
			ID:        msg.ID,
			SessionID: conv.ID,
			Position:  int32(i),
			Author:    string(msg.Author),
			Content:   msg.Text,
			CreatedAt: msg.CreatedAt,
		}); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

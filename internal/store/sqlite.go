package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file. This is the
// default checkpoint backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the checkpoint database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL keeps concurrent sessions from tripping over each other.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		profile_summary TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		position INTEGER NOT NULL,
		author TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(session_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, status, profile_summary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		conv.ID.String(), string(conv.Status), conv.ProfileSummary,
		conv.CreatedAt.Unix(), conv.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if len(conv.Messages) > 0 {
		return s.Save(ctx, conv)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, profile_summary, created_at, updated_at
		 FROM sessions WHERE id = ?`, id.String())

	var (
		rawID, status, summary string
		createdAt, updatedAt   int64
	)
	err := row.Scan(&rawID, &status, &summary, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	conv := &domain.Conversation{
		ID:             id,
		Status:         domain.Status(status),
		ProfileSummary: summary,
		CreatedAt:      time.Unix(createdAt, 0),
		UpdatedAt:      time.Unix(updatedAt, 0),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, content, created_at
		 FROM messages WHERE session_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			msgID, author, content string
			msgCreated             int64
		)
		if err := rows.Scan(&msgID, &author, &content, &msgCreated); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		parsed, err := uuid.Parse(msgID)
		if err != nil {
			return nil, fmt.Errorf("parse message id: %w", err)
		}
		conv.Messages = append(conv.Messages, domain.Message{
			ID:        parsed,
			Author:    domain.Author(author),
			Text:      content,
			CreatedAt: time.Unix(msgCreated, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return conv, nil
}

func (s *SQLiteStore) Save(ctx context.Context, conv *domain.Conversation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET status = ?, profile_summary = ?, updated_at = ?
		 WHERE id = ?`,
		string(conv.Status), conv.ProfileSummary, conv.UpdatedAt.Unix(), conv.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save session %s: %w", conv.ID, domain.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM messages WHERE session_id = ?`, conv.ID.String()); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	for i, msg := range conv.Messages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (id, session_id, position, author, content, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			msg.ID.String(), conv.ID.String(), i, string(msg.Author), msg.Text,
			msg.CreatedAt.Unix(),
		); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

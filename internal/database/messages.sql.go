package database

import (
	"context"

	"github.com/google/uuid"
)

const createMessage = `-- name: CreateMessage :exec
INSERT INTO messages (
id, session_id, position, author, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (q *Queries) CreateMessage(ctx context.Context, arg Message) error {
	_, err := q.db.ExecContext(ctx, createMessage,
		arg.ID,
		arg.SessionID,
		arg.Position,
		arg.Author,
		arg.Content,
		arg.CreatedAt,
	)
	return err
}

const getMessagesBySession = `-- name: GetMessagesBySession :many
SELECT id, session_id, position, author, content, created_at FROM messages WHERE session_id=$1 ORDER BY position
`

func (q *Queries) GetMessagesBySession(ctx context.Context, sessionID uuid.UUID) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx, getMessagesBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Message
	for rows.Next() {
		var i Message
		if err := rows.Scan(
			&i.ID,
			&i.SessionID,
			&i.Position,
			&i.Author,
			&i.Content,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteMessagesFrom = `-- name: DeleteMessagesFrom :exec
DELETE FROM messages WHERE session_id=$1 AND position >= $2
`

func (q *Queries) DeleteMessagesFrom(ctx context.Context, sessionID uuid.UUID, position int32) error {
	_, err := q.db.ExecContext(ctx, deleteMessagesFrom, sessionID, position)
	return err
}

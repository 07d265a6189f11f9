package database

import (
	"context"

	"github.com/google/uuid"
)

const createSession = `-- name: CreateSession :exec
INSERT INTO sessions (
id, status, profile_summary, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateSession(ctx context.Context, arg Session) error {
	_, err := q.db.ExecContext(ctx, createSession,
		arg.ID,
		arg.Status,
		arg.ProfileSummary,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getSession = `-- name: GetSession :one
SELECT id, status, profile_summary, created_at, updated_at FROM sessions WHERE id=$1
`

func (q *Queries) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.Status,
		&i.ProfileSummary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateSession = `-- name: UpdateSession :execrows
UPDATE sessions
SET status=$1, profile_summary=$2, updated_at=$3
WHERE id=$4
`

func (q *Queries) UpdateSession(ctx context.Context, arg Session) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateSession,
		arg.Status,
		arg.ProfileSummary,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

type fakeDB struct {
	rows int64
	args []interface{}
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.args = args
	return fakeResult{rows: f.rows}, nil
}

func (f *fakeDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func TestUpdateSessionReportsAffectedRows(t *testing.T) {
	session := Session{
		ID:             uuid.New(),
		Status:         "ended",
		ProfileSummary: "summary",
		UpdatedAt:      time.Now(),
	}

	db := &fakeDB{rows: 1}
	n, err := New(db).UpdateSession(context.Background(), session)
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 affected row, got %d", n)
	}
	// id is the WHERE argument, bound last.
	if len(db.args) != 4 || db.args[3] != session.ID {
		t.Errorf("Unexpected bound arguments: %v", db.args)
	}

	// Zero affected rows must be visible to the caller so an unknown
	// session maps to not-found instead of silently succeeding.
	n, err = New(&fakeDB{rows: 0}).UpdateSession(context.Background(), session)
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 affected rows, got %d", n)
	}
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/suvrat007/tutora-sub001/internal/models"
)

const submissionSchema = `CREATE TABLE IF NOT EXISTS console_submissions (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	batch_id TEXT NOT NULL,
	subject_id TEXT NOT NULL,
	date TEXT NOT NULL,
	present_count INTEGER NOT NULL,
	status TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`

// SubmissionRepository persists the mark-attendance journal.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// EnsureSchema creates the journal table when missing.
func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, submissionSchema); err != nil {
		return fmt.Errorf("ensure console_submissions: %w", err)
	}
	return nil
}

// Create inserts a journal row, assigning ID and CreatedAt when unset.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO console_submissions (id, session_id, batch_id, subject_id, date, present_count, status, message, created_at)
VALUES (:id, :session_id, :batch_id, :subject_id, :date, :present_count, :status, :message, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListBySession returns the newest submissions of a session.
func (r *SubmissionRepository) ListBySession(ctx context.Context, session string, limit int) ([]models.Submission, error) {
	var rows []models.Submission
	const query = `SELECT id, session_id, batch_id, subject_id, date, present_count, status, message, created_at FROM console_submissions WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, session, limit); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if rows == nil {
		rows = []models.Submission{}
	}
	return rows, nil
}

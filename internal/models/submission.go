package models

import "time"

// SubmissionStatus tracks the outcome of a mark-attendance request.
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is a journal row describing one mark-attendance attempt.
type Submission struct {
	ID           string           `db:"id" json:"id"`
	SessionID    string           `db:"session_id" json:"session_id"`
	BatchID      string           `db:"batch_id" json:"batch_id"`
	SubjectID    string           `db:"subject_id" json:"subject_id"`
	Date         string           `db:"date" json:"date"`
	PresentCount int              `db:"present_count" json:"present_count"`
	Status       SubmissionStatus `db:"status" json:"status"`
	Message      string           `db:"message" json:"message"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

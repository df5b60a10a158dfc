package dto

import "github.com/suvrat007/tutora-sub001/internal/models"

// SelectionRequest updates the console's batch/subject/date choice.
type SelectionRequest struct {
	Batch   string `json:"batch" validate:"max=120"`
	Subject string `json:"subject" validate:"max=120"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time    string `json:"time" validate:"omitempty,datetime=15:04"`
}

// ToSelection converts the request into the domain selection.
func (r SelectionRequest) ToSelection() models.Selection {
	return models.Selection{Batch: r.Batch, Subject: r.Subject, Date: r.Date, Time: r.Time}
}

// SubmitResponse reports a successful mark-attendance call and the follow-up refresh.
type SubmitResponse struct {
	State           models.ConsoleState `json:"state"`
	PresentCount    int                 `json:"present_count"`
	RefreshWarnings []string            `json:"refresh_warnings,omitempty"`
}

// RefreshResponse lists per-collection refetch failures, if any.
type RefreshResponse struct {
	Refreshed bool     `json:"refreshed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// TotalClassesRequest is the query for /classes/total.
type TotalClassesRequest struct {
	BatchID   string `form:"batchId" validate:"required"`
	SubjectID string `form:"subjectId" validate:"required"`
}

// TotalClassesResponse carries the held-session count.
type TotalClassesResponse struct {
	BatchID   string `json:"batch_id"`
	SubjectID string `json:"subject_id"`
	Total     int    `json:"total"`
}

// AlreadyPresentRequest is the query for /attendance/present.
type AlreadyPresentRequest struct {
	Date      string `form:"date" validate:"required,datetime=2006-01-02"`
	SubjectID string `form:"subjectId" validate:"required"`
}

// AlreadyPresentResponse lists students already marked for the date and subject.
type AlreadyPresentResponse struct {
	Date      string                 `json:"date"`
	SubjectID string                 `json:"subject_id"`
	Students  []models.PresentRecord `json:"students"`
}

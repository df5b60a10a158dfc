package service

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

// Submission messages shown to the admin.
const (
	MsgRequiredFields    = "Please fill all required fields"
	MsgInvalidDateTime   = "Invalid date or time"
	MsgNoStudentsPresent = "No students marked present"
	MsgMarkFailed        = "Failed to mark attendance"
	MsgMarked            = "Attendance marked successfully"
)

type attendanceMarker interface {
	MarkAttendance(ctx context.Context, payload models.MarkAttendancePayload) error
}

type submissionSnapshots interface {
	Batches(ctx context.Context, session string) ([]models.Batch, error)
	RefreshClassLogs(ctx context.Context, session string) error
	RefreshSummary(ctx context.Context, session string) error
}

type rosterFetcher interface {
	Fetch(ctx context.Context, session string) (models.ConsoleState, error)
}

type submissionJournal interface {
	Create(ctx context.Context, submission *models.Submission) error
}

// DateTimeValidator decides whether a selected date and optional time are acceptable.
type DateTimeValidator func(date, clock string) bool

// DefaultDateTimeValidator accepts YYYY-MM-DD dates up to today in loc and an
// optional HH:MM or HH:MM:SS time.
func DefaultDateTimeValidator(now func() time.Time, loc *time.Location) DateTimeValidator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return func(date, clock string) bool {
		day, err := time.ParseInLocation(dayLayout, date, loc)
		if err != nil {
			return false
		}
		today := now().In(loc).Format(dayLayout)
		if day.Format(dayLayout) > today {
			return false
		}
		if clock == "" {
			return true
		}
		if _, err := time.Parse("15:04", clock); err == nil {
			return true
		}
		_, err = time.Parse("15:04:05", clock)
		return err == nil
	}
}

// SubmissionService sends the present set to the institute API and resyncs afterwards.
type SubmissionService struct {
	states    consoleStateRepository
	snapshots submissionSnapshots
	marker    attendanceMarker
	roster    rosterFetcher
	journal   submissionJournal
	validDate DateTimeValidator
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionService constructs the service. journal may be nil.
func NewSubmissionService(states consoleStateRepository, snapshots submissionSnapshots, marker attendanceMarker, roster rosterFetcher, journal submissionJournal, validDate DateTimeValidator, metrics *MetricsService, logger *zap.Logger) *SubmissionService {
	if validDate == nil {
		validDate = DefaultDateTimeValidator(time.Now, time.UTC)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		states:    states,
		snapshots: snapshots,
		marker:    marker,
		roster:    roster,
		journal:   journal,
		validDate: validDate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit marks the session's present set for its selection. Validation
// failures never reach the network. A successful PATCH is followed by class
// log, summary and roster refetches; all three run and their failures come
// back as warnings rather than as an error.
func (s *SubmissionService) Submit(ctx context.Context, session string) (*dto.SubmitResponse, error) {
	st, err := loadState(ctx, s.states, session)
	if err != nil {
		return nil, err
	}
	sel := st.Selection

	switch {
	case !sel.Complete():
		return nil, s.reject(ctx, session, st, MsgRequiredFields)
	case !s.validDate(sel.Date, sel.Time):
		return nil, s.reject(ctx, session, st, MsgInvalidDateTime)
	case len(st.PresentIDs) == 0:
		return nil, s.reject(ctx, session, st, MsgNoStudentsPresent)
	}

	batches, err := s.snapshots.Batches(ctx, session)
	if err != nil {
		s.keepState(ctx, session, s.stamp(st.WithError(appErrors.FromError(err).Message)))
		return nil, err
	}
	batchID, subjectID, ok := resolveSelectionIDs(batches, sel)
	if !ok {
		return nil, s.reject(ctx, session, st, MsgSelectionNotFound)
	}

	payload := models.MarkAttendancePayload{
		BatchID:    batchID,
		SubjectID:  subjectID,
		Date:       sel.Date,
		PresentIDs: st.PresentIDs.IDs(),
	}
	if err := s.marker.MarkAttendance(ctx, payload); err != nil {
		msg := upstream.ServerMessage(err, MsgMarkFailed)
		s.record(ctx, session, payload, models.SubmissionFailed, msg)
		s.keepState(ctx, session, s.stamp(st.WithError(msg)))
		s.logger.Error("mark attendance failed", zap.String("session", session), zap.String("batch_id", batchID), zap.String("subject_id", subjectID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}
	s.record(ctx, session, payload, models.SubmissionSucceeded, MsgMarked)

	// Marks are recorded upstream by now, so a failed save is not an error.
	done := s.stamp(st.ClearPresent().WithMessage(MsgMarked))
	s.keepState(ctx, session, done)

	final, refreshErr := s.resync(ctx, session)
	if final == nil {
		final = &done
	}
	resp := &dto.SubmitResponse{State: *final, PresentCount: len(payload.PresentIDs)}
	for _, e := range multierr.Errors(refreshErr) {
		resp.RefreshWarnings = append(resp.RefreshWarnings, appErrors.FromError(e).Message)
	}
	if len(resp.RefreshWarnings) > 0 {
		s.logger.Warn("post-submit refresh incomplete", zap.String("session", session), zap.Error(refreshErr))
	}
	return resp, nil
}

func (s *SubmissionService) resync(ctx context.Context, session string) (*models.ConsoleState, error) {
	var err error
	err = multierr.Append(err, s.snapshots.RefreshClassLogs(ctx, session))
	err = multierr.Append(err, s.snapshots.RefreshSummary(ctx, session))
	st, rosterErr := s.roster.Fetch(ctx, session)
	if rosterErr != nil {
		return nil, multierr.Append(err, rosterErr)
	}
	return &st, err
}

// keepState saves st where the caller already has a result to return.
// Failures are logged rather than returned.
func (s *SubmissionService) keepState(ctx context.Context, session string, st models.ConsoleState) {
	if err := saveState(ctx, s.states, session, st); err != nil {
		s.logger.Warn("console state save failed", zap.String("session", session), zap.Error(err))
	}
}

func (s *SubmissionService) reject(ctx context.Context, session string, st models.ConsoleState, msg string) error {
	if err := saveState(ctx, s.states, session, s.stamp(st.WithError(msg))); err != nil {
		return err
	}
	return appErrors.Clone(appErrors.ErrValidation, msg)
}

func (s *SubmissionService) stamp(st models.ConsoleState) models.ConsoleState {
	st.UpdatedAt = s.now().UTC()
	return st
}

func (s *SubmissionService) record(ctx context.Context, session string, payload models.MarkAttendancePayload, status models.SubmissionStatus, msg string) {
	s.metrics.RecordSubmission(status)
	if s.journal == nil {
		return
	}
	entry := &models.Submission{
		SessionID:    session,
		BatchID:      payload.BatchID,
		SubjectID:    payload.SubjectID,
		Date:         payload.Date,
		PresentCount: len(payload.PresentIDs),
		Status:       status,
		Message:      msg,
	}
	if err := s.journal.Create(ctx, entry); err != nil {
		s.logger.Warn("journal write failed", zap.String("session", session), zap.Error(err))
	}
}

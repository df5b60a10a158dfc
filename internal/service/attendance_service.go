package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type attendanceSnapshots interface {
	Batches(ctx context.Context, session string) ([]models.Batch, error)
	StudentGroups(ctx context.Context, session string) ([]models.StudentGroup, error)
}

// AttendanceService answers read-only attendance questions over the snapshots.
type AttendanceService struct {
	snapshots attendanceSnapshots
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(snapshots attendanceSnapshots, clock Clock, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{snapshots: snapshots, clock: clock, validator: validate, logger: logger}
}

// TotalClasses counts held sessions for a batch/subject. Unknown ids yield 0
// without error; a failed batch fetch yields 0 together with the error so
// callers can tell "none held" from "could not tell".
func (s *AttendanceService) TotalClasses(ctx context.Context, session string, req dto.TotalClassesRequest) (*dto.TotalClassesResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "batchId and subjectId are required")
	}
	resp := &dto.TotalClassesResponse{BatchID: req.BatchID, SubjectID: req.SubjectID}
	batches, err := s.snapshots.Batches(ctx, session)
	if err != nil {
		s.logger.Error("total classes: batch fetch failed", zap.String("batch_id", req.BatchID), zap.String("subject_id", req.SubjectID), zap.Error(err))
		return resp, err
	}
	resp.Total = CountHeldSessions(batches, req.BatchID, req.SubjectID)
	return resp, nil
}

// AlreadyPresent lists students whose own attendance history shows them
// present for the subject on the date.
func (s *AttendanceService) AlreadyPresent(ctx context.Context, session string, req dto.AlreadyPresentRequest) (*dto.AlreadyPresentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date (YYYY-MM-DD) and subjectId are required")
	}
	groups, err := s.snapshots.StudentGroups(ctx, session)
	if err != nil {
		return nil, err
	}
	return &dto.AlreadyPresentResponse{
		Date:      req.Date,
		SubjectID: req.SubjectID,
		Students:  FilterAlreadyPresent(models.AllStudents(groups), req.Date, req.SubjectID, s.clock),
	}, nil
}

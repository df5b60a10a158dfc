package service

import (
	"context"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type submissionLister interface {
	ListBySession(ctx context.Context, session string, limit int) ([]models.Submission, error)
}

// JournalService reads back recorded submissions.
type JournalService struct {
	repo submissionLister
}

// NewJournalService constructs the journal reader. repo may be nil when the journal is off.
func NewJournalService(repo submissionLister) *JournalService {
	return &JournalService{repo: repo}
}

// Recent returns up to limit submissions of the session, newest first.
func (s *JournalService) Recent(ctx context.Context, session string, limit int) ([]models.Submission, error) {
	if s == nil || s.repo == nil {
		return nil, appErrors.Clone(appErrors.ErrDisabled, "submission journal is disabled")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.repo.ListBySession(ctx, session, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	return rows, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type consoleStateRepository interface {
	Load(ctx context.Context, session string) (models.ConsoleState, error)
	Save(ctx context.Context, session string, state models.ConsoleState) error
	Delete(ctx context.Context, session string) error
}

// ConsoleService owns the per-session selection and present-ID set.
type ConsoleService struct {
	states    consoleStateRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewConsoleService constructs the console service.
func NewConsoleService(states consoleStateRepository, validate *validator.Validate, logger *zap.Logger) *ConsoleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleService{states: states, validator: validate, logger: logger, now: time.Now}
}

// State returns the session's current state.
func (s *ConsoleService) State(ctx context.Context, session string) (models.ConsoleState, error) {
	return loadState(ctx, s.states, session)
}

// Select applies a new batch/subject/date selection.
func (s *ConsoleService) Select(ctx context.Context, session string, req dto.SelectionRequest) (models.ConsoleState, error) {
	req.Batch = strings.TrimSpace(req.Batch)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := s.validator.Struct(req); err != nil {
		return models.ConsoleState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection")
	}
	return s.update(ctx, session, func(st models.ConsoleState) models.ConsoleState {
		return st.WithSelection(req.ToSelection())
	})
}

// TogglePresent flips a student in the present set.
func (s *ConsoleService) TogglePresent(ctx context.Context, session, studentID string) (models.ConsoleState, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return models.ConsoleState{}, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	return s.update(ctx, session, func(st models.ConsoleState) models.ConsoleState {
		return st.TogglePresent(studentID)
	})
}

// ClearPresent empties the present set.
func (s *ConsoleService) ClearPresent(ctx context.Context, session string) (models.ConsoleState, error) {
	return s.update(ctx, session, models.ConsoleState.ClearPresent)
}

// Reset forgets the session's state.
func (s *ConsoleService) Reset(ctx context.Context, session string) error {
	if err := s.states.Delete(ctx, session); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset console state")
	}
	return nil
}

func (s *ConsoleService) update(ctx context.Context, session string, fn func(models.ConsoleState) models.ConsoleState) (models.ConsoleState, error) {
	st, err := loadState(ctx, s.states, session)
	if err != nil {
		return models.ConsoleState{}, err
	}
	next := fn(st)
	next.UpdatedAt = s.now().UTC()
	if err := saveState(ctx, s.states, session, next); err != nil {
		return models.ConsoleState{}, err
	}
	return next, nil
}

func loadState(ctx context.Context, repo consoleStateRepository, session string) (models.ConsoleState, error) {
	st, err := repo.Load(ctx, session)
	if err != nil {
		return models.ConsoleState{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load console state")
	}
	return st, nil
}

func saveState(ctx context.Context, repo consoleStateRepository, session string, st models.ConsoleState) error {
	if err := repo.Save(ctx, session, st); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save console state")
	}
	return nil
}

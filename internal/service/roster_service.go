package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type rosterSnapshots interface {
	Batches(ctx context.Context, session string) ([]models.Batch, error)
	StudentGroups(ctx context.Context, session string) ([]models.StudentGroup, error)
	ClassLogs(ctx context.Context, session string) ([]models.ClassLog, error)
}

// RosterService builds the class roster for the session's selection.
type RosterService struct {
	states    consoleStateRepository
	snapshots rosterSnapshots
	clock     Clock
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewRosterService constructs the roster service.
func NewRosterService(states consoleStateRepository, snapshots rosterSnapshots, clock Clock, metrics *MetricsService, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{states: states, snapshots: snapshots, clock: clock, metrics: metrics, logger: logger, now: time.Now}
}

// Fetch resolves the roster and already-marked students for the current
// selection and stores them in the session state. Missing preconditions are
// reported through state.Error and leave the previous roster in place; only
// storage and upstream failures return an error.
func (s *RosterService) Fetch(ctx context.Context, session string) (models.ConsoleState, error) {
	st, err := loadState(ctx, s.states, session)
	if err != nil {
		return models.ConsoleState{}, err
	}

	if !st.Selection.Complete() {
		return s.fail(ctx, session, st, MsgSelectionIncomplete, "incomplete")
	}

	in := RosterInput{Selection: st.Selection}
	if in.Batches, err = s.snapshots.Batches(ctx, session); err == nil {
		if in.Students, err = s.snapshots.StudentGroups(ctx, session); err == nil {
			in.ClassLogs, err = s.snapshots.ClassLogs(ctx, session)
		}
	}
	if err != nil {
		msg := appErrors.FromError(err).Message
		if _, saveErr := s.fail(ctx, session, st, msg, "upstream_error"); saveErr != nil {
			return models.ConsoleState{}, saveErr
		}
		return models.ConsoleState{}, err
	}

	res := ResolveRoster(in, s.clock)
	if res.Error != "" {
		return s.fail(ctx, session, st, res.Error, outcomeOf(res.Error))
	}

	next := st.WithRoster(res.Roster, res.AlreadyMarked)
	next.UpdatedAt = s.now().UTC()
	if err := saveState(ctx, s.states, session, next); err != nil {
		return models.ConsoleState{}, err
	}
	s.metrics.RecordRoster("ok")
	s.logger.Debug("roster fetched",
		zap.String("session", session),
		zap.String("batch_id", res.BatchID),
		zap.String("subject_id", res.SubjectID),
		zap.Int("roster", len(res.Roster)),
		zap.Int("already_marked", len(res.AlreadyMarked)),
	)
	return next, nil
}

func (s *RosterService) fail(ctx context.Context, session string, st models.ConsoleState, msg, outcome string) (models.ConsoleState, error) {
	next := st.WithError(msg)
	next.UpdatedAt = s.now().UTC()
	if err := saveState(ctx, s.states, session, next); err != nil {
		return models.ConsoleState{}, err
	}
	s.metrics.RecordRoster(outcome)
	return next, nil
}

func outcomeOf(msg string) string {
	switch msg {
	case MsgSelectionNotFound:
		return "not_found"
	case MsgNoClassLog:
		return "no_class_log"
	case MsgNoClassOnDate:
		return "no_class_on_date"
	default:
		return "incomplete"
	}
}

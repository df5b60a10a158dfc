package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

type instituteReader interface {
	Batches(ctx context.Context) ([]models.Batch, error)
	StudentGroups(ctx context.Context) ([]models.StudentGroup, error)
	ClassLogs(ctx context.Context) ([]models.ClassLog, error)
	AttendanceSummary(ctx context.Context) ([]models.AttendanceSummaryRow, error)
}

const (
	snapshotBatches   = "batches"
	snapshotStudents  = "students"
	snapshotClassLogs = "class_logs"
	snapshotSummary   = "summary"
)

var snapshotFailure = map[string]string{
	snapshotBatches:   "Failed to fetch batches",
	snapshotStudents:  "Failed to fetch students",
	snapshotClassLogs: "Failed to fetch class logs",
	snapshotSummary:   "Failed to fetch attendance summary",
}

// SnapshotService keeps per-session copies of the institute collections.
// A refetch replaces the cached copy wholesale.
type SnapshotService struct {
	api    instituteReader
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotService constructs the service. cache may be nil.
func NewSnapshotService(api instituteReader, cache *CacheService, ttl time.Duration, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{api: api, cache: cache, ttl: ttl, logger: logger}
}

func snapshotKey(session, kind string) string {
	return fmt.Sprintf("console:%s:snapshot:%s", session, kind)
}

func loadSnapshot[T any](ctx context.Context, s *SnapshotService, session, kind string, force bool, fetch func(context.Context) (T, error)) (T, error) {
	key := snapshotKey(session, kind)
	if !force {
		var cached T
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}
	fresh, err := fetch(ctx)
	if err != nil {
		var zero T
		s.logger.Warn("snapshot fetch failed", zap.String("session", session), zap.String("kind", kind), zap.Error(err))
		msg := upstream.ServerMessage(err, snapshotFailure[kind])
		return zero, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}
	_ = s.cache.Set(ctx, key, fresh, s.ttl)
	return fresh, nil
}

// Batches returns the batch snapshot, fetching it on a cache miss.
func (s *SnapshotService) Batches(ctx context.Context, session string) ([]models.Batch, error) {
	return loadSnapshot(ctx, s, session, snapshotBatches, false, s.api.Batches)
}

// StudentGroups returns the grouped student snapshot.
func (s *SnapshotService) StudentGroups(ctx context.Context, session string) ([]models.StudentGroup, error) {
	return loadSnapshot(ctx, s, session, snapshotStudents, false, s.api.StudentGroups)
}

// ClassLogs returns the class log snapshot.
func (s *SnapshotService) ClassLogs(ctx context.Context, session string) ([]models.ClassLog, error) {
	return loadSnapshot(ctx, s, session, snapshotClassLogs, false, s.api.ClassLogs)
}

// Summary returns the attendance summary snapshot.
func (s *SnapshotService) Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error) {
	return loadSnapshot(ctx, s, session, snapshotSummary, false, s.api.AttendanceSummary)
}

// RefreshClassLogs refetches class logs.
func (s *SnapshotService) RefreshClassLogs(ctx context.Context, session string) error {
	_, err := loadSnapshot(ctx, s, session, snapshotClassLogs, true, s.api.ClassLogs)
	return err
}

// RefreshSummary refetches the attendance summary.
func (s *SnapshotService) RefreshSummary(ctx context.Context, session string) error {
	_, err := loadSnapshot(ctx, s, session, snapshotSummary, true, s.api.AttendanceSummary)
	return err
}

// RefreshAll refetches every collection in turn. Every step runs; failures are combined.
func (s *SnapshotService) RefreshAll(ctx context.Context, session string) error {
	var err error
	_, e := loadSnapshot(ctx, s, session, snapshotBatches, true, s.api.Batches)
	err = multierr.Append(err, e)
	_, e = loadSnapshot(ctx, s, session, snapshotStudents, true, s.api.StudentGroups)
	err = multierr.Append(err, e)
	err = multierr.Append(err, s.RefreshClassLogs(ctx, session))
	err = multierr.Append(err, s.RefreshSummary(ctx, session))
	return err
}

// Invalidate drops every snapshot of the session.
func (s *SnapshotService) Invalidate(ctx context.Context, session string) error {
	return s.cache.Invalidate(ctx, snapshotKey(session, "*"))
}

// Refresh runs RefreshAll and reports each failed collection as a warning.
func (s *SnapshotService) Refresh(ctx context.Context, session string) *dto.RefreshResponse {
	err := s.RefreshAll(ctx, session)
	resp := &dto.RefreshResponse{Refreshed: err == nil}
	for _, e := range multierr.Errors(err) {
		resp.Warnings = append(resp.Warnings, appErrors.FromError(e).Message)
	}
	return resp
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

type adminAPI interface {
	Admin(ctx context.Context) (*models.Admin, error)
	Logout(ctx context.Context) error
}

type sessionResetter interface {
	Reset(ctx context.Context, session string) error
}

type snapshotInvalidator interface {
	Invalidate(ctx context.Context, session string) error
}

// AdminService proxies the admin profile and logout.
type AdminService struct {
	api       adminAPI
	console   sessionResetter
	snapshots snapshotInvalidator
	logger    *zap.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(api adminAPI, console sessionResetter, snapshots snapshotInvalidator, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{api: api, console: console, snapshots: snapshots, logger: logger}
}

// Profile returns the signed-in admin.
func (s *AdminService) Profile(ctx context.Context) (*models.Admin, error) {
	admin, err := s.api.Admin(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstream.ServerMessage(err, "Failed to fetch admin"))
	}
	return admin, nil
}

// Logout ends the institute session and drops everything the console holds for it.
// Local cleanup runs even when the upstream call fails.
func (s *AdminService) Logout(ctx context.Context, session string) error {
	upErr := s.api.Logout(ctx)
	if err := s.console.Reset(ctx, session); err != nil {
		s.logger.Warn("logout: state reset failed", zap.String("session", session), zap.Error(err))
	}
	if err := s.snapshots.Invalidate(ctx, session); err != nil {
		s.logger.Warn("logout: snapshot invalidate failed", zap.String("session", session), zap.Error(err))
	}
	if upErr != nil {
		return appErrors.Wrap(upErr, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstream.ServerMessage(upErr, "Logout failed"))
	}
	return nil
}

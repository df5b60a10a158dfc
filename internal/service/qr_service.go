package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

type qrGenerator interface {
	GenerateQRCode(ctx context.Context, data models.QRData) (string, error)
}

type batchSnapshots interface {
	Batches(ctx context.Context, session string) ([]models.Batch, error)
}

// QRService produces self check-in QR codes for the current selection.
type QRService struct {
	states    consoleStateRepository
	snapshots batchSnapshots
	generator qrGenerator
	logger    *zap.Logger
}

// NewQRService constructs the QR service.
func NewQRService(states consoleStateRepository, snapshots batchSnapshots, generator qrGenerator, logger *zap.Logger) *QRService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QRService{states: states, snapshots: snapshots, generator: generator, logger: logger}
}

// Generate encodes {batchId, subjectId, date} of the selection.
func (s *QRService) Generate(ctx context.Context, session string) (*models.QRCode, error) {
	st, err := loadState(ctx, s.states, session)
	if err != nil {
		return nil, err
	}
	if !st.Selection.Complete() {
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgSelectionIncomplete)
	}
	batches, err := s.snapshots.Batches(ctx, session)
	if err != nil {
		return nil, err
	}
	batchID, subjectID, ok := resolveSelectionIDs(batches, st.Selection)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, MsgSelectionNotFound)
	}

	data := models.QRData{BatchID: batchID, SubjectID: subjectID, Date: st.Selection.Date}
	url, err := s.generator.GenerateQRCode(ctx, data)
	if err != nil {
		msg := upstream.ServerMessage(err, "Failed to generate QR code")
		s.logger.Warn("qr generation failed", zap.String("session", session), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}
	return &models.QRCode{DataURL: url, QRData: data}, nil
}

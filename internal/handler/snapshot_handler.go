package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/models"
	"github.com/suvrat007/tutora-sub001/pkg/response"
)

type snapshotReader interface {
	Batches(ctx context.Context, session string) ([]models.Batch, error)
	StudentGroups(ctx context.Context, session string) ([]models.StudentGroup, error)
	ClassLogs(ctx context.Context, session string) ([]models.ClassLog, error)
}

// SnapshotHandler exposes the session's cached institute collections.
type SnapshotHandler struct {
	snapshots snapshotReader
}

// NewSnapshotHandler constructs a snapshot handler.
func NewSnapshotHandler(snapshots snapshotReader) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// Batches godoc
// @Summary List batches with subjects and class status
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *SnapshotHandler) Batches(c *gin.Context) {
	batches, err := h.snapshots.Batches(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, batches, map[string]interface{}{"count": len(batches)})
}

// Students godoc
// @Summary List students grouped by batch
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *SnapshotHandler) Students(c *gin.Context) {
	groups, err := h.snapshots.StudentGroups(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, groups, map[string]interface{}{"count": len(models.AllStudents(groups))})
}

// ClassLogs godoc
// @Summary List class logs
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class-logs [get]
func (h *SnapshotHandler) ClassLogs(c *gin.Context) {
	logs, err := h.snapshots.ClassLogs(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, logs, map[string]interface{}{"count": len(logs)})
}

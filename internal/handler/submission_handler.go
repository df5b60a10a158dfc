package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/models"
	"github.com/suvrat007/tutora-sub001/pkg/response"
)

type submissionReader interface {
	Recent(ctx context.Context, session string, limit int) ([]models.Submission, error)
}

// SubmissionHandler exposes the submission journal.
type SubmissionHandler struct {
	journal submissionReader
}

// NewSubmissionHandler constructs a submission handler.
func NewSubmissionHandler(journal submissionReader) *SubmissionHandler {
	return &SubmissionHandler{journal: journal}
}

// List godoc
// @Summary Recent submissions of the session
// @Tags Submissions
// @Produce json
// @Param limit query int false "Max rows (default 20, max 100)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.journal.Recent(c.Request.Context(), sessionFromContext(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows, map[string]interface{}{"count": len(rows)})
}

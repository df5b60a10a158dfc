package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/response"
)

type consoleStore interface {
	State(ctx context.Context, session string) (models.ConsoleState, error)
	Select(ctx context.Context, session string, req dto.SelectionRequest) (models.ConsoleState, error)
	TogglePresent(ctx context.Context, session, studentID string) (models.ConsoleState, error)
	ClearPresent(ctx context.Context, session string) (models.ConsoleState, error)
}

type rosterLoader interface {
	Fetch(ctx context.Context, session string) (models.ConsoleState, error)
}

type attendanceSubmitter interface {
	Submit(ctx context.Context, session string) (*dto.SubmitResponse, error)
}

type snapshotRefresher interface {
	Refresh(ctx context.Context, session string) *dto.RefreshResponse
}

type qrIssuer interface {
	Generate(ctx context.Context, session string) (*models.QRCode, error)
}

// ConsoleHandler drives the attendance console of one session.
type ConsoleHandler struct {
	console   consoleStore
	roster    rosterLoader
	submitter attendanceSubmitter
	refresher snapshotRefresher
	qr        qrIssuer
}

// NewConsoleHandler constructs a console handler.
func NewConsoleHandler(console consoleStore, roster rosterLoader, submitter attendanceSubmitter, refresher snapshotRefresher, qr qrIssuer) *ConsoleHandler {
	return &ConsoleHandler{console: console, roster: roster, submitter: submitter, refresher: refresher, qr: qr}
}

// State godoc
// @Summary Current console state
// @Tags Console
// @Produce json
// @Param X-Console-Session header string false "Console session id"
// @Success 200 {object} response.Envelope
// @Router /console/state [get]
func (h *ConsoleHandler) State(c *gin.Context) {
	st, err := h.console.State(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// Select godoc
// @Summary Choose batch, subject and date
// @Tags Console
// @Accept json
// @Produce json
// @Param payload body dto.SelectionRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /console/selection [put]
func (h *ConsoleHandler) Select(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload"))
		return
	}
	st, err := h.console.Select(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// TogglePresent godoc
// @Summary Toggle a student's present mark
// @Tags Console
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /console/present/{studentId} [post]
func (h *ConsoleHandler) TogglePresent(c *gin.Context) {
	st, err := h.console.TogglePresent(c.Request.Context(), sessionFromContext(c), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// ClearPresent godoc
// @Summary Untick every student
// @Tags Console
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /console/present [delete]
func (h *ConsoleHandler) ClearPresent(c *gin.Context) {
	st, err := h.console.ClearPresent(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// FetchRoster godoc
// @Summary Load the roster for the current selection
// @Description Selection problems are reported in state.error with a 200 response.
// @Tags Console
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/roster [post]
func (h *ConsoleHandler) FetchRoster(c *gin.Context) {
	st, err := h.roster.Fetch(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// Submit godoc
// @Summary Mark the ticked students present
// @Tags Console
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/submit [post]
func (h *ConsoleHandler) Submit(c *gin.Context) {
	resp, err := h.submitter.Submit(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if len(resp.RefreshWarnings) > 0 {
		meta = map[string]interface{}{"refresh_warnings": resp.RefreshWarnings}
	}
	response.OK(c, resp, meta)
}

// Refresh godoc
// @Summary Refetch every institute collection
// @Tags Console
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /console/refresh [post]
func (h *ConsoleHandler) Refresh(c *gin.Context) {
	response.OK(c, h.refresher.Refresh(c.Request.Context(), sessionFromContext(c)))
}

// QRCode godoc
// @Summary Generate a self check-in QR code
// @Tags Console
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /console/qr [post]
func (h *ConsoleHandler) QRCode(c *gin.Context) {
	code, err := h.qr.Generate(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, code)
}

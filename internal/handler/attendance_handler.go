package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	"github.com/suvrat007/tutora-sub001/internal/service"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/response"
)

type attendanceQuerier interface {
	TotalClasses(ctx context.Context, session string, req dto.TotalClassesRequest) (*dto.TotalClassesResponse, error)
	AlreadyPresent(ctx context.Context, session string, req dto.AlreadyPresentRequest) (*dto.AlreadyPresentResponse, error)
}

type summaryExporter interface {
	Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error)
	ExportSummary(ctx context.Context, session, rawFormat string) (*service.ExportResult, error)
}

// AttendanceHandler answers attendance queries and summary exports.
type AttendanceHandler struct {
	attendance    attendanceQuerier
	exporter      summaryExporter
	exportEnabled bool
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(attendance attendanceQuerier, exporter summaryExporter, exportEnabled bool) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exporter: exporter, exportEnabled: exportEnabled}
}

// TotalClasses godoc
// @Summary Count held classes for a batch and subject
// @Tags Attendance
// @Produce json
// @Param batchId query string true "Batch ID"
// @Param subjectId query string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classes/total [get]
func (h *AttendanceHandler) TotalClasses(c *gin.Context) {
	var req dto.TotalClassesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	resp, err := h.attendance.TotalClasses(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// AlreadyPresent godoc
// @Summary Students already present for a date and subject
// @Tags Attendance
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param subjectId query string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/present [get]
func (h *AttendanceHandler) AlreadyPresent(c *gin.Context) {
	var req dto.AlreadyPresentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	resp, err := h.attendance.AlreadyPresent(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp, map[string]interface{}{"count": len(resp.Students)})
}

// Summary godoc
// @Summary Attendance summary per student and subject
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	rows, err := h.exporter.Summary(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows, map[string]interface{}{"count": len(rows)})
}

// ExportSummary godoc
// @Summary Download the attendance summary
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /attendance/summary/export [get]
func (h *AttendanceHandler) ExportSummary(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrDisabled, "summary export is disabled"))
		return
	}
	res, err := h.exporter.ExportSummary(c.Request.Context(), sessionFromContext(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, res.Filename, res.ContentType, res.Body)
}

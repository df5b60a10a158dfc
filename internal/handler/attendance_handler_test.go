package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	"github.com/suvrat007/tutora-sub001/internal/service"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type attendanceStub struct {
	total   dto.TotalClassesRequest
	present dto.AlreadyPresentRequest
	err     error
}

func (s *attendanceStub) TotalClasses(ctx context.Context, session string, req dto.TotalClassesRequest) (*dto.TotalClassesResponse, error) {
	s.total = req
	return &dto.TotalClassesResponse{BatchID: req.BatchID, SubjectID: req.SubjectID, Total: 3}, s.err
}

func (s *attendanceStub) AlreadyPresent(ctx context.Context, session string, req dto.AlreadyPresentRequest) (*dto.AlreadyPresentResponse, error) {
	s.present = req
	return &dto.AlreadyPresentResponse{Date: req.Date, SubjectID: req.SubjectID, Students: []models.PresentRecord{}}, s.err
}

type exportStub struct{}

func (exportStub) Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error) {
	return []models.AttendanceSummaryRow{{StudentID: "S1"}}, nil
}

func (exportStub) ExportSummary(ctx context.Context, session, rawFormat string) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "attendance-summary.csv", ContentType: "text/csv", Body: []byte("Student\n")}, nil
}

func TestAttendanceHandlerTotalClasses(t *testing.T) {
	svc := &attendanceStub{}
	h := NewAttendanceHandler(svc, exportStub{}, true)

	c, w := newConsoleContext(http.MethodGet, "/classes/total?batchId=B1&subjectId=SUBJ1", nil)
	h.TotalClasses(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.TotalClassesRequest{BatchID: "B1", SubjectID: "SUBJ1"}, svc.total)
	assert.Contains(t, w.Body.String(), `"total":3`)
}

func TestAttendanceHandlerTotalClassesUpstreamFailure(t *testing.T) {
	svc := &attendanceStub{err: appErrors.Clone(appErrors.ErrUpstream, "Failed to fetch batches")}
	h := NewAttendanceHandler(svc, exportStub{}, true)

	c, w := newConsoleContext(http.MethodGet, "/classes/total?batchId=B1&subjectId=SUBJ1", nil)
	h.TotalClasses(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAttendanceHandlerAlreadyPresent(t *testing.T) {
	svc := &attendanceStub{}
	h := NewAttendanceHandler(svc, exportStub{}, true)

	c, w := newConsoleContext(http.MethodGet, "/attendance/present?date=2024-05-01&subjectId=SUBJ1", nil)
	h.AlreadyPresent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-05-01", svc.present.Date)
	assert.Contains(t, w.Body.String(), `"students":[]`)
}

func TestAttendanceHandlerExport(t *testing.T) {
	h := NewAttendanceHandler(&attendanceStub{}, exportStub{}, true)

	c, w := newConsoleContext(http.MethodGet, "/attendance/summary/export?format=csv", nil)
	h.ExportSummary(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-summary.csv")
}

func TestAttendanceHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAttendanceHandler(&attendanceStub{}, exportStub{}, false)

	c, w := newConsoleContext(http.MethodGet, "/attendance/summary/export", nil)
	h.ExportSummary(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

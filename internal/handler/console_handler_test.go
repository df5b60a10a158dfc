package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvrat007/tutora-sub001/internal/dto"
	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/logger"
)

type consoleStub struct {
	state    models.ConsoleState
	session  string
	selected dto.SelectionRequest
	toggled  string
	err      error
}

func (s *consoleStub) State(ctx context.Context, session string) (models.ConsoleState, error) {
	s.session = session
	return s.state, s.err
}

func (s *consoleStub) Select(ctx context.Context, session string, req dto.SelectionRequest) (models.ConsoleState, error) {
	s.session = session
	s.selected = req
	return s.state.WithSelection(req.ToSelection()), s.err
}

func (s *consoleStub) TogglePresent(ctx context.Context, session, studentID string) (models.ConsoleState, error) {
	s.toggled = studentID
	return s.state.TogglePresent(studentID), s.err
}

func (s *consoleStub) ClearPresent(ctx context.Context, session string) (models.ConsoleState, error) {
	return s.state.ClearPresent(), s.err
}

type rosterStub struct {
	state models.ConsoleState
	err   error
}

func (s *rosterStub) Fetch(ctx context.Context, session string) (models.ConsoleState, error) {
	return s.state, s.err
}

type submitStub struct {
	resp *dto.SubmitResponse
	err  error
}

func (s *submitStub) Submit(ctx context.Context, session string) (*dto.SubmitResponse, error) {
	return s.resp, s.err
}

type refreshStub struct{}

func (refreshStub) Refresh(ctx context.Context, session string) *dto.RefreshResponse {
	return &dto.RefreshResponse{Refreshed: false, Warnings: []string{"Failed to fetch batches"}}
}

type qrStub struct{}

func (qrStub) Generate(ctx context.Context, session string) (*models.QRCode, error) {
	return &models.QRCode{DataURL: "data:image/png;base64,AAAA"}, nil
}

func newConsoleContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(logger.SessionKey, "desk-1")
	return c, w
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestConsoleHandlerSelect(t *testing.T) {
	console := &consoleStub{state: models.NewConsoleState()}
	h := NewConsoleHandler(console, nil, nil, nil, nil)

	body, _ := json.Marshal(dto.SelectionRequest{Batch: "Morning", Subject: "Physics", Date: "2024-05-01"})
	c, w := newConsoleContext(http.MethodPut, "/console/selection", body)
	h.Select(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "desk-1", console.session)
	assert.Equal(t, "Physics", console.selected.Subject)

	var st models.ConsoleState
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &st))
	assert.Equal(t, "Morning", st.Selection.Batch)
}

func TestConsoleHandlerSelectBadBody(t *testing.T) {
	h := NewConsoleHandler(&consoleStub{}, nil, nil, nil, nil)

	c, w := newConsoleContext(http.MethodPut, "/console/selection", []byte("{"))
	h.Select(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
}

func TestConsoleHandlerToggle(t *testing.T) {
	console := &consoleStub{state: models.NewConsoleState()}
	h := NewConsoleHandler(console, nil, nil, nil, nil)

	c, w := newConsoleContext(http.MethodPost, "/console/present/S1", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "S1"}}
	h.TogglePresent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "S1", console.toggled)
	assert.Contains(t, w.Body.String(), `"present_ids":["S1"]`)
}

func TestConsoleHandlerRosterSoftError(t *testing.T) {
	roster := &rosterStub{state: models.NewConsoleState().WithError("No class found on the selected date")}
	h := NewConsoleHandler(nil, roster, nil, nil, nil)

	c, w := newConsoleContext(http.MethodPost, "/console/roster", nil)
	h.FetchRoster(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No class found on the selected date")
}

func TestConsoleHandlerSubmit(t *testing.T) {
	sub := &submitStub{resp: &dto.SubmitResponse{
		State:           models.NewConsoleState().WithMessage("Attendance marked successfully"),
		PresentCount:    2,
		RefreshWarnings: []string{"Failed to fetch attendance summary"},
	}}
	h := NewConsoleHandler(nil, nil, sub, nil, nil)

	c, w := newConsoleContext(http.MethodPost, "/console/submit", nil)
	h.Submit(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, []interface{}{"Failed to fetch attendance summary"}, env.Meta["refresh_warnings"])
}

func TestConsoleHandlerSubmitValidationError(t *testing.T) {
	sub := &submitStub{err: appErrors.Clone(appErrors.ErrValidation, "No students marked present")}
	h := NewConsoleHandler(nil, nil, sub, nil, nil)

	c, w := newConsoleContext(http.MethodPost, "/console/submit", nil)
	h.Submit(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No students marked present", decode(t, w).Error.Message)
}

func TestConsoleHandlerRefreshAndQR(t *testing.T) {
	h := NewConsoleHandler(nil, nil, nil, refreshStub{}, qrStub{})

	c, w := newConsoleContext(http.MethodPost, "/console/refresh", nil)
	h.Refresh(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch batches")

	c, w = newConsoleContext(http.MethodPost, "/console/qr", nil)
	h.QRCode(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "qrCodeDataURL")
}

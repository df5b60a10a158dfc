// Package upstream is the HTTP client for the institute API the console fronts.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/models"
)

// Institute API paths.
const (
	PathBatches           = "/api/batch/get-all-batches"
	PathStudents          = "/api/student/get-all-students-of-institute"
	PathClassLogs         = "/api/classLog/getAllClasslogs"
	PathAttendanceSummary = "/api/student/attendance/summary"
	PathMarkAttendance    = "/api/classLog/mark-attendance"
	PathLogout            = "/api/auth/logout"
	PathAdmin             = "/api/admin/get"
	PathGenerateQR        = "/generate-qr-code"
)

const maxBodyBytes = 8 << 20

// Observer receives per-call timings; MetricsService implements it.
type Observer interface {
	ObserveUpstream(method, path string, status int, duration time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	QRBaseURL  string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Observer   Observer
}

// Client talks to the institute API on behalf of a console session. The
// caller's cookie is taken from the request context (see WithCookie).
type Client struct {
	baseURL   string
	qrBaseURL string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
	observer  Observer
}

// New constructs a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	qrBase := opts.QRBaseURL
	if qrBase == "" {
		qrBase = opts.BaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		qrBaseURL: strings.TrimRight(qrBase, "/"),
		userAgent: opts.UserAgent,
		http:      httpClient,
		logger:    logger,
		observer:  opts.Observer,
	}
}

type cookieKey struct{}

// WithCookie attaches the browser's Cookie header so it is forwarded upstream.
func WithCookie(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, cookieKey{}, cookie)
}

// CookieFrom returns the cookie attached by WithCookie.
func CookieFrom(ctx context.Context) string {
	cookie, _ := ctx.Value(cookieKey{}).(string)
	return cookie
}

// Batches fetches every batch with nested subjects and class status.
func (c *Client) Batches(ctx context.Context) ([]models.Batch, error) {
	var out []models.Batch
	if err := c.do(ctx, http.MethodGet, c.baseURL, PathBatches, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentGroups fetches the institute's students grouped by batch.
func (c *Client) StudentGroups(ctx context.Context) ([]models.StudentGroup, error) {
	var out []models.StudentGroup
	if err := c.do(ctx, http.MethodGet, c.baseURL, PathStudents, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassLogs fetches every class log.
func (c *Client) ClassLogs(ctx context.Context) ([]models.ClassLog, error) {
	var out []models.ClassLog
	if err := c.do(ctx, http.MethodGet, c.baseURL, PathClassLogs, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttendanceSummary fetches the per-student attendance summary.
func (c *Client) AttendanceSummary(ctx context.Context) ([]models.AttendanceSummaryRow, error) {
	var out []models.AttendanceSummaryRow
	if err := c.do(ctx, http.MethodGet, c.baseURL, PathAttendanceSummary, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAttendance patches the class log with the present student ids.
func (c *Client) MarkAttendance(ctx context.Context, payload models.MarkAttendancePayload) error {
	return c.do(ctx, http.MethodPatch, c.baseURL, PathMarkAttendance, payload, nil)
}

// Logout ends the institute session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.baseURL, PathLogout, nil, nil)
}

// Admin fetches the signed-in administrator.
func (c *Client) Admin(ctx context.Context) (*models.Admin, error) {
	var out models.Admin
	if err := c.do(ctx, http.MethodGet, c.baseURL, PathAdmin, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateQRCode asks the QR service to encode data and returns a data URL.
func (c *Client) GenerateQRCode(ctx context.Context, data models.QRData) (string, error) {
	var out struct {
		DataURL string `json:"qrCodeDataURL"`
	}
	body := map[string]models.QRData{"data": data}
	if err := c.do(ctx, http.MethodPost, c.qrBaseURL, PathGenerateQR, body, &out); err != nil {
		return "", err
	}
	if out.DataURL == "" {
		return "", &Error{Method: http.MethodPost, Path: PathGenerateQR, Status: http.StatusOK, Message: "empty QR code in response"}
	}
	return out.DataURL, nil
}

func (c *Client) do(ctx context.Context, method, base, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if cookie := CookieFrom(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, http.StatusServiceUnavailable, time.Since(start))
		c.logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.observe(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		upErr := &Error{Method: method, Path: path, Status: resp.StatusCode, Message: messageFrom(raw)}
		c.logger.Warn("upstream returned error", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("message", upErr.Message))
		return upErr
	}

	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(raw), dest); err != nil {
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) observe(method, path string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(method, path, status, d)
	}
}

// unwrapData returns the "data" member of an envelope, or raw unchanged.
// A null data member decodes as an empty result.
func unwrapData(raw []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	data, ok := envelope["data"]
	if !ok {
		return raw
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("null")
	}
	return data
}

func messageFrom(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ""
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/export"
)

type summarySnapshots interface {
	Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered summary ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

var summaryHeaders = []string{"Student", "Batch", "Subject", "Attended", "Total", "Percentage"}

// ExportService renders the attendance summary as CSV or PDF.
type ExportService struct {
	snapshots summarySnapshots
	csv       csvRenderer
	pdf       pdfRenderer
	title     string
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService; nil renderers get the defaults.
func NewExportService(snapshots summarySnapshots, title string, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if title == "" {
		title = "Attendance Summary"
	}
	return &ExportService{snapshots: snapshots, csv: csv, pdf: pdf, title: title, logger: logger, now: time.Now}
}

// Summary returns the cached attendance summary.
func (s *ExportService) Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error) {
	return s.snapshots.Summary(ctx, session)
}

// ExportSummary renders the summary in the requested format ("csv" or "pdf").
func (s *ExportService) ExportSummary(ctx context.Context, session, rawFormat string) (*ExportResult, error) {
	format, ok := export.ParseFormat(rawFormat)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	rows, err := s.snapshots.Summary(ctx, session)
	if err != nil {
		return nil, err
	}
	data := BuildSummaryDataset(rows)

	var body []byte
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(data, s.title)
	default:
		body, err = s.csv.Render(data)
	}
	if err != nil {
		s.logger.Error("summary export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render summary")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("attendance-summary-%s.%s", s.now().Format("20060102-150405"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// BuildSummaryDataset orders rows by batch, subject, student name.
func BuildSummaryDataset(rows []models.AttendanceSummaryRow) export.Dataset {
	sorted := append([]models.AttendanceSummaryRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.BatchName != b.BatchName {
			return a.BatchName < b.BatchName
		}
		if a.SubjectName != b.SubjectName {
			return a.SubjectName < b.SubjectName
		}
		return a.StudentName < b.StudentName
	})

	data := export.Dataset{Headers: summaryHeaders, Rows: make([]map[string]string, 0, len(sorted))}
	for _, r := range sorted {
		pct := r.Percentage
		if pct == 0 && r.Total > 0 {
			pct = float64(r.Attended) * 100 / float64(r.Total)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Student":    r.StudentName,
			"Batch":      r.BatchName,
			"Subject":    r.SubjectName,
			"Attended":   strconv.Itoa(r.Attended),
			"Total":      strconv.Itoa(r.Total),
			"Percentage": strconv.FormatFloat(pct, 'f', 1, 64),
		})
	}
	return data
}

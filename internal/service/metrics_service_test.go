package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvrat007/tutora-sub001/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordSubmission(models.SubmissionSucceeded)
	m.RecordSubmission(models.SubmissionSucceeded)
	m.RecordSubmission(models.SubmissionFailed)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordRoster("ok")
	m.ObserveUpstream(http.MethodGet, "/api/batch/get-all-batches", http.StatusOK, 5*time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "attendance_submissions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), counts["succeeded"])
	assert.Equal(t, float64(1), counts["failed"])

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "upstream_request_duration_seconds")
	assert.Contains(t, body, `cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `roster_fetch_total{outcome="ok"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordSubmission(models.SubmissionFailed)
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

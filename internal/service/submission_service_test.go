package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

type stubMarker struct {
	payloads []models.MarkAttendancePayload
	err      error
}

func (m *stubMarker) MarkAttendance(ctx context.Context, payload models.MarkAttendancePayload) error {
	m.payloads = append(m.payloads, payload)
	return m.err
}

type stubRoster struct {
	states *memStates
	calls  int
	err    error
}

func (r *stubRoster) Fetch(ctx context.Context, session string) (models.ConsoleState, error) {
	r.calls++
	if r.err != nil {
		return models.ConsoleState{}, r.err
	}
	return r.states.Load(ctx, session)
}

type stubJournal struct {
	entries []models.Submission
}

func (j *stubJournal) Create(ctx context.Context, submission *models.Submission) error {
	j.entries = append(j.entries, *submission)
	return nil
}

type submissionFixture struct {
	svc     *SubmissionService
	states  *memStates
	snaps   *stubSnapshots
	marker  *stubMarker
	roster  *stubRoster
	journal *stubJournal
}

func newSubmissionFixture(present ...string) submissionFixture {
	states := newMemStates()
	st := models.NewConsoleState().WithSelection(rosterInput().Selection)
	for _, id := range present {
		st = st.TogglePresent(id)
	}
	states.states["s1"] = st

	f := submissionFixture{
		states:  states,
		snaps:   newStubSnapshots(rosterInput()),
		marker:  &stubMarker{},
		roster:  &stubRoster{states: states},
		journal: &stubJournal{},
	}
	valid := DefaultDateTimeValidator(fixedNow, time.UTC)
	f.svc = NewSubmissionService(states, f.snaps, f.marker, f.roster, f.journal, valid, NewMetricsService(), nil)
	f.svc.now = fixedNow
	return f
}

func TestSubmitWithNoPresentStudentsNeverCallsUpstream(t *testing.T) {
	f := newSubmissionFixture()

	resp, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, MsgNoStudentsPresent, f.states.states["s1"].Error)
	assert.Empty(t, f.marker.payloads)
	assert.Empty(t, f.journal.entries)
}

func TestSubmitRequiresSelection(t *testing.T) {
	f := newSubmissionFixture("S1")
	st := f.states.states["s1"]
	st.Selection.Subject = ""
	f.states.states["s1"] = st

	_, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, MsgRequiredFields, f.states.states["s1"].Error)
	assert.Empty(t, f.marker.payloads)
}

func TestSubmitRejectsFutureDate(t *testing.T) {
	f := newSubmissionFixture("S1")
	st := f.states.states["s1"]
	st.Selection.Date = "2024-05-02"
	f.states.states["s1"] = st

	_, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, MsgInvalidDateTime, f.states.states["s1"].Error)
	assert.Empty(t, f.marker.payloads)
}

func TestSubmitSuccess(t *testing.T) {
	f := newSubmissionFixture("S2", "S1")

	resp, err := f.svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, f.marker.payloads, 1)
	assert.Equal(t, models.MarkAttendancePayload{BatchID: "B1", SubjectID: "SUBJ1", Date: "2024-05-01", PresentIDs: []string{"S1", "S2"}}, f.marker.payloads[0])

	assert.Equal(t, 2, resp.PresentCount)
	assert.Empty(t, resp.RefreshWarnings)
	assert.Equal(t, MsgMarked, resp.State.Message)
	assert.Empty(t, resp.State.Error)
	assert.Empty(t, resp.State.PresentIDs)

	assert.Equal(t, []string{snapshotClassLogs, snapshotSummary}, f.snaps.refreshes)
	assert.Equal(t, 1, f.roster.calls)
	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, models.SubmissionSucceeded, f.journal.entries[0].Status)
	assert.Equal(t, 2, f.journal.entries[0].PresentCount)
}

func TestSubmitSurfacesServerMessage(t *testing.T) {
	f := newSubmissionFixture("S1")
	f.marker.err = &upstream.Error{Method: "PATCH", Path: upstream.PathMarkAttendance, Status: 400, Message: "Date mismatch"}

	_, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
	assert.Equal(t, "Date mismatch", appErrors.FromError(err).Message)

	st := f.states.states["s1"]
	assert.Equal(t, "Date mismatch", st.Error)
	assert.True(t, st.PresentIDs.Has("S1"), "a failed submit keeps the present set")
	assert.Empty(t, f.snaps.refreshes)
	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, models.SubmissionFailed, f.journal.entries[0].Status)
}

func TestSubmitFallbackMessage(t *testing.T) {
	f := newSubmissionFixture("S1")
	f.marker.err = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, MsgMarkFailed, f.states.states["s1"].Error)
}

func TestSubmitRefreshFailuresBecomeWarnings(t *testing.T) {
	f := newSubmissionFixture("S1")
	f.snaps.errs["refresh_"+snapshotSummary] = appErrors.Clone(appErrors.ErrUpstream, "Failed to fetch attendance summary")
	f.roster.err = appErrors.Clone(appErrors.ErrUpstream, "Failed to fetch class logs")

	resp, err := f.svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Failed to fetch attendance summary", "Failed to fetch class logs"}, resp.RefreshWarnings)
	assert.Equal(t, MsgMarked, resp.State.Message)
	assert.Len(t, f.snaps.refreshes, 2, "every refetch runs even after a failure")
}

func TestSubmitWithoutJournal(t *testing.T) {
	f := newSubmissionFixture("S1")
	f.svc.journal = nil

	_, err := f.svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
}

func TestSubmitSucceedsWhenStateSaveFails(t *testing.T) {
	f := newSubmissionFixture("S1")
	core, logs := observer.New(zapcore.WarnLevel)
	f.svc.logger = zap.New(core)
	f.states.saveErr = errors.New("redis down")
	f.roster.err = errors.New("redis down")

	resp, err := f.svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, f.marker.payloads, 1)
	assert.Equal(t, MsgMarked, resp.State.Message)
	assert.Empty(t, resp.State.PresentIDs)
	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, models.SubmissionSucceeded, f.journal.entries[0].Status)
	assert.Equal(t, 1, logs.FilterMessage("console state save failed").Len())
}

func TestSubmitFailureLogsLostStateSave(t *testing.T) {
	f := newSubmissionFixture("S1")
	core, logs := observer.New(zapcore.WarnLevel)
	f.svc.logger = zap.New(core)
	f.states.saveErr = errors.New("redis down")
	f.marker.err = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream), "the upstream failure wins over the save failure")
	assert.Equal(t, 1, logs.FilterMessage("console state save failed").Len())
}

func TestDefaultDateTimeValidator(t *testing.T) {
	valid := DefaultDateTimeValidator(fixedNow, time.UTC)

	assert.True(t, valid("2024-05-01", ""))
	assert.True(t, valid("2024-04-30", "09:30"))
	assert.True(t, valid("2024-04-30", "09:30:15"))
	assert.False(t, valid("2024-05-02", ""))
	assert.False(t, valid("2024-13-01", ""))
	assert.False(t, valid("2024-04-30", "25:00"))
}

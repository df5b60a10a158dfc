package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleStateToggleTwiceIsIdentity(t *testing.T) {
	s := NewConsoleState().TogglePresent("S1")
	assert.True(t, s.PresentIDs.Has("S1"))

	s = s.TogglePresent("S1")
	assert.False(t, s.PresentIDs.Has("S1"))
	assert.Empty(t, s.PresentIDs)
}

func TestConsoleStateTransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewConsoleState().TogglePresent("S1")
	_ = base.TogglePresent("S2")
	_ = base.ClearPresent()

	assert.Equal(t, []string{"S1"}, base.PresentIDs.IDs())
}

func TestConsoleStateSelectionChangeClearsPresent(t *testing.T) {
	sel := Selection{Batch: "B1", Subject: "Maths", Date: "2024-05-01"}
	s := NewConsoleState().WithSelection(sel).TogglePresent("S1").WithError("stale")

	same := s.WithSelection(Selection{Batch: "B1", Subject: "Maths", Date: "2024-05-01", Time: "10:00"})
	assert.True(t, same.PresentIDs.Has("S1"))
	assert.Equal(t, "10:00", same.Selection.Time)

	changed := s.WithSelection(Selection{Batch: "B1", Subject: "Maths", Date: "2024-05-02"})
	assert.Empty(t, changed.PresentIDs)
	assert.Empty(t, changed.Error)
}

func TestConsoleStateWithRosterResetsPresent(t *testing.T) {
	s := NewConsoleState().TogglePresent("S9").WithError("No class log found for the selected batch and subject")
	s = s.WithRoster([]Student{{ID: "S1"}}, []PresentRecord{{Student: Student{ID: "S1"}, Time: "09:00:00"}})

	assert.Empty(t, s.PresentIDs)
	assert.Empty(t, s.Error)
	require.Len(t, s.Roster, 1)
	require.Len(t, s.AlreadyMarked, 1)
}

func TestConsoleStateJSONRoundTripKeepsSet(t *testing.T) {
	s := NewConsoleState().TogglePresent("b").TogglePresent("a")
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"present_ids":["a","b"]`)

	var decoded ConsoleState
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.PresentIDs.Has("a"))
	assert.True(t, decoded.PresentIDs.Has("b"))
}

func TestBatchLookups(t *testing.T) {
	batches := []Batch{{ID: "B1", Name: "Morning", Subjects: []Subject{{ID: "SUBJ1", Name: "Physics"}}}}

	b, ok := FindBatchByName(batches, "Morning")
	require.True(t, ok)
	subj, ok := b.SubjectByName("Physics")
	require.True(t, ok)
	assert.Equal(t, "SUBJ1", subj.ID)

	_, ok = FindBatch(batches, "B2")
	assert.False(t, ok)
}

package service

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/suvrat007/tutora-sub001/internal/models"
)

const dayLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dayLayout,
}

// parseTimestamp accepts the timestamp shapes the institute API emits.
// Zone-less values are read as UTC.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayOf normalises a timestamp to its UTC calendar day (YYYY-MM-DD).
func DayOf(raw string) (string, bool) {
	t, ok := parseTimestamp(raw)
	if !ok {
		return "", false
	}
	return t.UTC().Format(dayLayout), true
}

func sameDay(raw, target string) bool {
	day, ok := DayOf(raw)
	if !ok {
		return false
	}
	if normalized, ok := DayOf(target); ok {
		target = normalized
	}
	return day == target
}

// Clock renders attendance timestamps as wall-clock times in the institute's zone.
type Clock struct {
	loc    *time.Location
	layout string
}

// NewClock builds a Clock. An unknown zone falls back to IST, which is what the
// institute API assumes.
func NewClock(zone, layout string) Clock {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}
	if layout == "" {
		layout = "15:04:05"
	}
	return Clock{loc: loc, layout: layout}
}

// Location returns the clock's zone.
func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return NewClock("", "").loc
	}
	return c.loc
}

// TimeOf formats raw in the clock's zone; unparseable input is returned as-is.
func (c Clock) TimeOf(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return raw
	}
	layout := c.layout
	if layout == "" {
		layout = "15:04:05"
	}
	return t.In(c.Location()).Format(layout)
}

// FilterAlreadyPresent lists students with a present attendance entry for
// subjectID on dateStr. Entries recorded as absent are skipped. Each student
// appears at most once, carrying the time of its first matching entry.
func FilterAlreadyPresent(students []models.Student, dateStr, subjectID string, clock Clock) []models.PresentRecord {
	result := []models.PresentRecord{}
	seen := make(map[string]struct{})
	for _, student := range students {
		if _, dup := seen[student.ID]; dup {
			continue
		}
		for _, entry := range student.Attendance {
			if !entry.Present || entry.Subject != subjectID || !sameDay(entry.Date, dateStr) {
				continue
			}
			seen[student.ID] = struct{}{}
			result = append(result, models.PresentRecord{Student: student, Time: clock.TimeOf(entry.Date)})
			break
		}
	}
	return result
}

// CountHeldSessions counts held sessions under batchID/subjectID. Unknown ids count zero.
func CountHeldSessions(batches []models.Batch, batchID, subjectID string) int {
	batch, ok := models.FindBatch(batches, batchID)
	if !ok {
		return 0
	}
	subject, ok := batch.Subject(subjectID)
	if !ok {
		return 0
	}
	total := 0
	for _, status := range subject.ClassStatus {
		for _, session := range status.Sessions {
			if session.Held {
				total++
			}
		}
	}
	return total
}

// Roster resolution messages shown to the admin.
const (
	MsgSelectionIncomplete = "Please select batch, subject and date"
	MsgSelectionNotFound   = "Selected batch or subject not found"
	MsgNoClassLog          = "No class log found for the selected batch and subject"
	MsgNoClassOnDate       = "No class found on the selected date"
)

// RosterInput carries the selection and the cached collections a roster is built from.
type RosterInput struct {
	Selection models.Selection
	Batches   []models.Batch
	Students  []models.StudentGroup
	ClassLogs []models.ClassLog
}

// RosterResult is either a roster with its already-marked subset, or a soft Error.
type RosterResult struct {
	BatchID       string
	SubjectID     string
	Roster        []models.Student
	AlreadyMarked []models.PresentRecord
	Error         string
}

// ResolveRoster derives the class roster for the selection. Missing
// preconditions produce a RosterResult with Error set, never a Go error.
func ResolveRoster(in RosterInput, clock Clock) RosterResult {
	sel := in.Selection
	if !sel.Complete() {
		return RosterResult{Error: MsgSelectionIncomplete}
	}

	batchID, subjectID, ok := resolveSelectionIDs(in.Batches, sel)
	if !ok {
		return RosterResult{Error: MsgSelectionNotFound}
	}
	res := RosterResult{BatchID: batchID, SubjectID: subjectID}

	roster := []models.Student{}
	for _, student := range models.StudentsOfBatch(in.Students, batchID) {
		if student.EnrolledIn(subjectID) {
			roster = append(roster, student)
		}
	}

	log, ok := models.FindClassLog(in.ClassLogs, batchID, subjectID)
	if !ok {
		res.Error = MsgNoClassLog
		return res
	}

	var occurrence *models.ClassOccurrence
	for i := range log.Classes {
		if sameDay(log.Classes[i].Date, sel.Date) {
			occurrence = &log.Classes[i]
			break
		}
	}
	if occurrence == nil {
		res.Error = MsgNoClassOnDate
		return res
	}

	markedAt := make(map[string]string, len(occurrence.Attendance))
	for _, a := range occurrence.Attendance {
		if _, dup := markedAt[a.StudentID]; !dup {
			markedAt[a.StudentID] = a.Time
		}
	}
	marked := []models.PresentRecord{}
	for _, student := range roster {
		if at, ok := markedAt[student.ID]; ok {
			marked = append(marked, models.PresentRecord{Student: student, Time: clock.TimeOf(at)})
		}
	}

	res.Roster = roster
	res.AlreadyMarked = marked
	return res
}

func resolveSelectionIDs(batches []models.Batch, sel models.Selection) (string, string, bool) {
	batch, ok := models.FindBatchByName(batches, sel.Batch)
	if !ok {
		return "", "", false
	}
	subject, ok := batch.SubjectByName(sel.Subject)
	if !ok {
		return "", "", false
	}
	return batch.ID, subject.ID, true
}

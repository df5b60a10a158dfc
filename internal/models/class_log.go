package models

// ClassAttendance records when a student was marked present in a class.
type ClassAttendance struct {
	StudentID string `json:"studentId"`
	Time      string `json:"time"`
}

// ClassOccurrence is one held class of a class log.
type ClassOccurrence struct {
	Date       string            `json:"date"`
	Attendance []ClassAttendance `json:"attendance"`
}

// ClassLog collects held classes for a (batch, subject) pair.
type ClassLog struct {
	ID        string            `json:"_id"`
	BatchID   string            `json:"batch_id"`
	SubjectID string            `json:"subject_id"`
	Classes   []ClassOccurrence `json:"classes"`
}

// FindClassLog returns the log for batchID/subjectID.
func FindClassLog(logs []ClassLog, batchID, subjectID string) (ClassLog, bool) {
	for _, l := range logs {
		if l.BatchID == batchID && l.SubjectID == subjectID {
			return l, true
		}
	}
	return ClassLog{}, false
}

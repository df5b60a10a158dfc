package models

// AttendanceEntry is one line of a student's embedded attendance history.
// Date is the raw timestamp string as stored by the institute API.
type AttendanceEntry struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Present bool   `json:"present"`
}

// Student is an enrolled learner with embedded attendance records.
type Student struct {
	ID         string            `json:"_id"`
	Name       string            `json:"name"`
	BatchID    string            `json:"batch_id,omitempty"`
	SubjectIDs []string          `json:"subjects,omitempty"`
	Attendance []AttendanceEntry `json:"attendance,omitempty"`
}

// EnrolledIn reports whether the student takes subjectID.
func (s Student) EnrolledIn(subjectID string) bool {
	for _, id := range s.SubjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

// StudentGroup is the institute's grouped-by-batch student listing.
type StudentGroup struct {
	BatchID  string    `json:"batch_id"`
	Students []Student `json:"students"`
}

// StudentsOfBatch returns the students grouped under batchID.
func StudentsOfBatch(groups []StudentGroup, batchID string) []Student {
	for _, g := range groups {
		if g.BatchID == batchID {
			return g.Students
		}
	}
	return nil
}

// AllStudents flattens grouped students.
func AllStudents(groups []StudentGroup) []Student {
	var out []Student
	for _, g := range groups {
		out = append(out, g.Students...)
	}
	return out
}

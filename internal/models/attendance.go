package models

// PresentRecord is a student already marked present, with the local mark time.
type PresentRecord struct {
	Student Student `json:"student"`
	Time    string  `json:"time"`
}

// MarkAttendancePayload is the PATCH body for /api/classLog/mark-attendance.
type MarkAttendancePayload struct {
	BatchID    string   `json:"batch_id"`
	SubjectID  string   `json:"subject_id"`
	Date       string   `json:"date"`
	PresentIDs []string `json:"presentIds"`
}

// AttendanceSummaryRow is one student/subject line of the summary report.
type AttendanceSummaryRow struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	BatchName   string  `json:"batchName"`
	SubjectName string  `json:"subjectName"`
	Attended    int     `json:"attended"`
	Total       int     `json:"total"`
	Percentage  float64 `json:"percentage"`
}

package models

// Session is a single scheduled class slot.
type Session struct {
	Held bool   `json:"held"`
	Date string `json:"date"`
}

// ClassStatus groups sessions for a subject.
type ClassStatus struct {
	Sessions []Session `json:"sessions"`
}

// Subject belongs to a batch and tracks its class status history.
type Subject struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	ClassStatus []ClassStatus `json:"class_status,omitempty"`
}

// Batch is a cohort of students sharing a set of subjects.
type Batch struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	Subjects []Subject `json:"subjects"`
}

// FindBatch looks a batch up by id.
func FindBatch(batches []Batch, id string) (Batch, bool) {
	for _, b := range batches {
		if b.ID == id {
			return b, true
		}
	}
	return Batch{}, false
}

// FindBatchByName looks a batch up by its display name.
func FindBatchByName(batches []Batch, name string) (Batch, bool) {
	for _, b := range batches {
		if b.Name == name {
			return b, true
		}
	}
	return Batch{}, false
}

// Subject looks a subject of the batch up by id.
func (b Batch) Subject(id string) (Subject, bool) {
	for _, s := range b.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// SubjectByName looks a subject of the batch up by display name.
func (b Batch) SubjectByName(name string) (Subject, bool) {
	for _, s := range b.Subjects {
		if s.Name == name {
			return s, true
		}
	}
	return Subject{}, false
}

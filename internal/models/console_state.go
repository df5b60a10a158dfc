package models

import (
	"encoding/json"
	"sort"
	"time"
)

// PresentSet is the set of student ids ticked present for the current selection.
type PresentSet map[string]struct{}

// NewPresentSet builds a set from ids.
func NewPresentSet(ids ...string) PresentSet {
	set := make(PresentSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership.
func (p PresentSet) Has(id string) bool {
	_, ok := p[id]
	return ok
}

// IDs returns the members in sorted order.
func (p PresentSet) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p PresentSet) clone() PresentSet {
	out := make(PresentSet, len(p))
	for id := range p {
		out[id] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (p PresentSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (p *PresentSet) UnmarshalJSON(raw []byte) error {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return err
	}
	*p = NewPresentSet(ids...)
	return nil
}

// Selection is the admin's current batch/subject/date choice, by display name.
type Selection struct {
	Batch   string `json:"batch"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
}

// Complete reports whether batch, subject and date are all chosen.
func (s Selection) Complete() bool {
	return s.Batch != "" && s.Subject != "" && s.Date != ""
}

// ConsoleState is the per-session view model. Transition methods never mutate
// the receiver; they return the next state.
type ConsoleState struct {
	Selection     Selection       `json:"selection"`
	PresentIDs    PresentSet      `json:"present_ids"`
	Roster        []Student       `json:"roster"`
	AlreadyMarked []PresentRecord `json:"already_marked"`
	Error         string          `json:"error,omitempty"`
	Message       string          `json:"message,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewConsoleState returns an empty state.
func NewConsoleState() ConsoleState {
	return ConsoleState{PresentIDs: PresentSet{}, Roster: []Student{}, AlreadyMarked: []PresentRecord{}}
}

func (s ConsoleState) next() ConsoleState {
	n := s
	n.PresentIDs = s.PresentIDs.clone()
	n.Roster = append([]Student(nil), s.Roster...)
	n.AlreadyMarked = append([]PresentRecord(nil), s.AlreadyMarked...)
	return n
}

// WithSelection applies a new selection. Changing batch, subject or date
// clears the present set and any pending error.
func (s ConsoleState) WithSelection(sel Selection) ConsoleState {
	n := s.next()
	if sel.Batch != s.Selection.Batch || sel.Subject != s.Selection.Subject || sel.Date != s.Selection.Date {
		n.PresentIDs = PresentSet{}
		n.Error = ""
		n.Message = ""
	}
	n.Selection = sel
	return n
}

// TogglePresent flips studentID in the present set.
func (s ConsoleState) TogglePresent(studentID string) ConsoleState {
	n := s.next()
	if n.PresentIDs.Has(studentID) {
		delete(n.PresentIDs, studentID)
	} else {
		n.PresentIDs[studentID] = struct{}{}
	}
	return n
}

// ClearPresent empties the present set.
func (s ConsoleState) ClearPresent() ConsoleState {
	n := s.next()
	n.PresentIDs = PresentSet{}
	return n
}

// WithRoster replaces roster and already-marked list and resets the present set.
func (s ConsoleState) WithRoster(roster []Student, marked []PresentRecord) ConsoleState {
	n := s.next()
	n.Roster = append([]Student{}, roster...)
	n.AlreadyMarked = append([]PresentRecord{}, marked...)
	n.PresentIDs = PresentSet{}
	n.Error = ""
	return n
}

// WithError records a user-facing error, leaving everything else untouched.
func (s ConsoleState) WithError(msg string) ConsoleState {
	n := s.next()
	n.Error = msg
	return n
}

// WithMessage records a user-facing notice and clears the error.
func (s ConsoleState) WithMessage(msg string) ConsoleState {
	n := s.next()
	n.Message = msg
	n.Error = ""
	return n
}

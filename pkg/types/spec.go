package types

import (
	"strings"
	"time"
)

// TaskSpec is a composable filter predicate over tasks. It always carries an
// owner constraint: NewTaskSpec refuses an empty owner, so no spec can match
// across tenants. The optional constraints are title-contains
// (case-insensitive), status-equals, and due-date-equals (exact instant, not
// a range).
//
// A spec is usable two ways: Match evaluates it in memory, and the accessor
// methods expose the tagged constraints so a storage backend can translate
// them into its native query form instead of scanning.
type TaskSpec struct {
	ownerID       string
	titleContains string
	status        string
	dueDate       *time.Time
}

// NewTaskSpec builds a spec scoped to ownerID. An empty titleContains or
// status means that constraint is absent; a nil dueDate likewise.
func NewTaskSpec(ownerID, titleContains, status string, dueDate *time.Time) (*TaskSpec, error) {
	if ownerID == "" {
		return nil, NewValidationError("owner_id", "must not be empty")
	}
	if status != "" && !validStatuses[status] {
		return nil, NewValidationError("status", "unknown status "+status)
	}
	return &TaskSpec{
		ownerID:       ownerID,
		titleContains: titleContains,
		status:        status,
		dueDate:       dueDate,
	}, nil
}

// OwnerID returns the owner constraint. Always present.
func (s *TaskSpec) OwnerID() string { return s.ownerID }

// TitleContains returns the title substring constraint and whether it is set.
func (s *TaskSpec) TitleContains() (string, bool) {
	return s.titleContains, s.titleContains != ""
}

// Status returns the status constraint and whether it is set.
func (s *TaskSpec) Status() (string, bool) {
	return s.status, s.status != ""
}

// DueDate returns the due-date constraint and whether it is set.
func (s *TaskSpec) DueDate() (time.Time, bool) {
	if s.dueDate == nil {
		return time.Time{}, false
	}
	return *s.dueDate, true
}

// Match reports whether t satisfies every constraint. This is
// the in-memory form of the predicate; backends that push the filter down
// must agree with it.
func (s *TaskSpec) Match(t *Task) bool {
	if t.OwnerID != s.ownerID {
		return false
	}
	if s.titleContains != "" &&
		!strings.Contains(strings.ToLower(t.Title), strings.ToLower(s.titleContains)) {
		return false
	}
	if s.status != "" && t.Status != s.status {
		return false
	}
	if s.dueDate != nil {
		if t.DueDate == nil || !t.DueDate.Equal(*s.dueDate) {
			return false
		}
	}
	return true
}

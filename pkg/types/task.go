package types

import (
	"time"
	"unicode/utf8"
)

// Task statuses. The status field is opaque data: any status may follow any
// other, the service validates membership only.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// validPriorities is the set of recognized priority values.
var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// MaxTitleLength is the longest title accepted by Validate, in characters.
const MaxTitleLength = 100

// Task is a per-user work item. ID and OwnerID are set at creation and never
// change; UpdatedAt never precedes CreatedAt.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	OwnerID     string     `json:"owner_id"`
}

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool { return validStatuses[s] }

// ValidPriority reports whether p is a recognized task priority.
func ValidPriority(p string) bool { return validPriorities[p] }

// Validate checks the task's field invariants. It returns a *ValidationError
// naming the offending field.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 100 characters")
	}
	if !validStatuses[t.Status] {
		return NewValidationError("status", "unknown status "+t.Status)
	}
	if !validPriorities[t.Priority] {
		return NewValidationError("priority", "unknown priority "+t.Priority)
	}
	if t.OwnerID == "" {
		return NewValidationError("owner_id", "must not be empty")
	}
	return nil
}

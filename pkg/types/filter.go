package types

import "time"

// Sortable field names accepted by ListQuery.SortBy.
const (
	SortByTitle     = "title"
	SortByStatus    = "status"
	SortByPriority  = "priority"
	SortByDueDate   = "due_date"
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
)

// SortableFields is the enumerated set of fields a query may sort on.
// Unrecognized names are rejected at validation rather than silently
// ignored, so sort behavior is never ambiguous.
var SortableFields = map[string]bool{
	SortByTitle:     true,
	SortByStatus:    true,
	SortByPriority:  true,
	SortByDueDate:   true,
	SortByCreatedAt: true,
	SortByUpdatedAt: true,
}

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery carries request-scoped filter criteria: optional constraints,
// sort, and a pagination window. It is never persisted.
type ListQuery struct {
	Title    string     `json:"title,omitempty"`
	Status   string     `json:"status,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	SortBy   string     `json:"sort_by,omitempty"`
	SortDesc bool       `json:"sort_desc,omitempty"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Normalize fills zero pagination values with the defaults.
func (q *ListQuery) Normalize() {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
}

// Validate checks the query. SortBy empty means the default order
// (created_at descending); any other unrecognized name is rejected.
func (q *ListQuery) Validate() error {
	if q.Page < 1 {
		return NewValidationError("page", "must be at least 1")
	}
	if q.PageSize < 1 {
		return NewValidationError("page_size", "must be at least 1")
	}
	if q.PageSize > MaxPageSize {
		return NewValidationError("page_size", "must be at most 100")
	}
	if q.SortBy != "" && !SortableFields[q.SortBy] {
		return NewValidationError("sort_by", "unknown sort field "+q.SortBy)
	}
	if q.Status != "" && !validStatuses[q.Status] {
		return NewValidationError("status", "unknown status "+q.Status)
	}
	return nil
}

// Skip returns the number of rows the pagination window skips.
func (q *ListQuery) Skip() int {
	return (q.Page - 1) * q.PageSize
}

// PagedResult is one page of tasks plus the total count of the full
// filtered set, independent of the page window.
type PagedResult struct {
	Items      []*Task `json:"items"`
	TotalCount int     `json:"total_count"`
	PageNumber int     `json:"page_number"`
	PageSize   int     `json:"page_size"`
}

package types

import "context"

// TaskStore executes specs against durable storage and stages mutations.
//
// Add, Update, and Delete only record a change; Commit makes the staged
// batch durable in one transaction and is the only operation that can fail
// with a persistence error. A stage-then-commit sequence is one logical
// unit of work and must not interleave with stages from another logical
// operation on the same store handle.
type TaskStore interface {
	// FindByID returns the task with the given ID, or ErrNotFound. It does
	// not enforce ownership; that is the service's job.
	FindByID(ctx context.Context, id string) (*Task, error)

	// FindFiltered returns the tasks matching spec, sorted and windowed,
	// plus the total count of the full filtered set before the window is
	// applied. sortBy must be empty (default order: created_at descending)
	// or one of SortableFields; equal keys are tie-broken by id ascending
	// so repeated queries return a consistent order. A skip beyond the
	// available rows yields an empty page with the correct total.
	FindFiltered(ctx context.Context, spec *TaskSpec, sortBy string, sortDesc bool, skip, take int) ([]*Task, int, error)

	// Add stages an insert of a new task.
	Add(t *Task)

	// Update stages an update of an existing task.
	Update(t *Task)

	// Delete stages a removal of an existing task.
	Delete(t *Task)

	// Commit durably applies all staged changes in one transaction.
	// A duplicate ID surfaces as ErrConstraintViolation; transient
	// failures as ErrStorageUnavailable.
	Commit(ctx context.Context) error
}

// UserStore persists accounts for the auth service.
type UserStore interface {
	// CreateUser inserts a new user. A duplicate email surfaces as
	// ErrConstraintViolation.
	CreateUser(ctx context.Context, u *User) error

	// UserByEmail returns the user with the given email, or ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*User, error)

	// UserByID returns the user with the given ID, or ErrNotFound.
	UserByID(ctx context.Context, id string) (*User, error)
}

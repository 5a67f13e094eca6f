// Package service orchestrates task and account operations on top of the
// storage backend. It is the only writer of task state and the single place
// where ownership is decided.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// TaskManager is the task operation surface the HTTP layer consumes.
// LoggingTaskService wraps it; TaskService is the real implementation.
type TaskManager interface {
	Create(ctx context.Context, in CreateTaskInput, ownerID string) (*types.Task, error)
	Get(ctx context.Context, id, ownerID string) (*types.Task, error)
	Update(ctx context.Context, id string, in UpdateTaskInput, ownerID string) (*types.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	List(ctx context.Context, q types.ListQuery, ownerID string) (*types.PagedResult, error)
}

// CreateTaskInput carries the caller-supplied fields for a new task.
// Empty Status and Priority take the defaults (pending, medium).
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

// UpdateTaskInput carries a partial update. Nil fields leave the existing
// value unchanged; there is no way to clear a due date once set.
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
}

// TaskService implements TaskManager over a TaskStore.
//
// Disclosure policy: a task owned by someone else is reported as
// ErrNotFound, never ErrAccessDenied, so existence is not confirmed to
// non-owners. The gate itself produces ErrAccessDenied; the public methods
// mask it before returning.
type TaskService struct {
	store types.TaskStore
}

// Compile-time interface check.
var _ TaskManager = (*TaskService)(nil)

// NewTaskService creates a TaskService over the given store.
func NewTaskService(store types.TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create builds a new task bound to ownerID, generates its ID and
// timestamps, and commits it.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput, ownerID string) (*types.Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating task ID: %w", err)
	}

	now := time.Now().UTC()
	task := &types.Task{
		ID:          id.String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     ownerID,
	}
	if task.Status == "" {
		task.Status = types.StatusPending
	}
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	s.store.Add(task)
	if err := s.store.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task with the given ID if ownerID owns it.
func (s *TaskService) Get(ctx context.Context, id, ownerID string) (*types.Task, error) {
	task, err := s.ownedTask(ctx, id, ownerID)
	if err != nil {
		return nil, maskDenied(err)
	}
	return task, nil
}

// Update merges the non-nil fields of in onto the owned task, refreshes
// UpdatedAt, and commits. UpdatedAt strictly increases even when the clock
// has not advanced past the previous update.
func (s *TaskService) Update(ctx context.Context, id string, in UpdateTaskInput, ownerID string) (*types.Task, error) {
	task, err := s.ownedTask(ctx, id, ownerID)
	if err != nil {
		return nil, maskDenied(err)
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Nanosecond)
	}
	task.UpdatedAt = now

	s.store.Update(task)
	if err := s.store.Commit(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the owned task. Absence and denial propagate as errors; a
// nil return means the task was deleted.
func (s *TaskService) Delete(ctx context.Context, id, ownerID string) error {
	task, err := s.ownedTask(ctx, id, ownerID)
	if err != nil {
		return maskDenied(err)
	}

	s.store.Delete(task)
	return s.store.Commit(ctx)
}

// List returns one page of the caller's tasks matching the criteria, with
// the total count over the whole filtered set.
func (s *TaskService) List(ctx context.Context, q types.ListQuery, ownerID string) (*types.PagedResult, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	spec, err := types.NewTaskSpec(ownerID, q.Title, q.Status, q.DueDate)
	if err != nil {
		return nil, err
	}

	items, total, err := s.store.FindFiltered(ctx, spec, q.SortBy, q.SortDesc, q.Skip(), q.PageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*types.Task{}
	}
	return &types.PagedResult{
		Items:      items,
		TotalCount: total,
		PageNumber: q.Page,
		PageSize:   q.PageSize,
	}, nil
}

// ownedTask is the ownership gate: it loads the task and verifies the
// caller owns it. A missing ID is ErrNotFound; an owner mismatch is
// ErrAccessDenied, which the public methods mask.
func (s *TaskService) ownedTask(ctx context.Context, id, ownerID string) (*types.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, types.ErrAccessDenied
	}
	return task, nil
}

// maskDenied folds ErrAccessDenied into ErrNotFound per the disclosure
// policy documented on TaskService.
func maskDenied(err error) error {
	if errors.Is(err, types.ErrAccessDenied) {
		return types.ErrNotFound
	}
	return err
}

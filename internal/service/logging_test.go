package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// stubTaskManager records the last call and returns canned results.
type stubTaskManager struct {
	lastOp string
	task   *types.Task
	page   *types.PagedResult
	err    error
}

func (s *stubTaskManager) Create(_ context.Context, _ CreateTaskInput, _ string) (*types.Task, error) {
	s.lastOp = "create"
	return s.task, s.err
}

func (s *stubTaskManager) Get(_ context.Context, _, _ string) (*types.Task, error) {
	s.lastOp = "get"
	return s.task, s.err
}

func (s *stubTaskManager) Update(_ context.Context, _ string, _ UpdateTaskInput, _ string) (*types.Task, error) {
	s.lastOp = "update"
	return s.task, s.err
}

func (s *stubTaskManager) Delete(_ context.Context, _, _ string) error {
	s.lastOp = "delete"
	return s.err
}

func (s *stubTaskManager) List(_ context.Context, _ types.ListQuery, _ string) (*types.PagedResult, error) {
	s.lastOp = "list"
	return s.page, s.err
}

func TestLoggingTaskServicePassthrough(t *testing.T) {
	ctx := context.Background()
	want := &types.Task{ID: "t-1", Title: "Logged", OwnerID: "user-1"}
	stub := &stubTaskManager{task: want, page: &types.PagedResult{TotalCount: 3}}

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewLoggingTaskService(stub, log)

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Logged"}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, want, task)
	assert.Equal(t, "create", stub.lastOp)
	assert.Contains(t, buf.String(), `"op":"task.create"`)
	assert.Contains(t, buf.String(), `"owner_id":"user-1"`)

	page, err := svc.List(ctx, types.ListQuery{}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, "list", stub.lastOp)
}

func TestLoggingTaskServiceErrorsUnchanged(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("backend on fire")
	stub := &stubTaskManager{err: failure}

	var buf bytes.Buffer
	svc := NewLoggingTaskService(stub, slog.New(slog.NewJSONHandler(&buf, nil)))

	_, err := svc.Get(ctx, "t-1", "user-1")
	assert.ErrorIs(t, err, failure)

	err = svc.Delete(ctx, "t-1", "user-1")
	assert.ErrorIs(t, err, failure)

	_, err = svc.Update(ctx, "t-1", UpdateTaskInput{}, "user-1")
	assert.ErrorIs(t, err, failure)

	assert.Contains(t, buf.String(), "task operation failed")
	assert.Contains(t, buf.String(), "backend on fire")
}

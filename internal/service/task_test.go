package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/internal/sqlite"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// setupService backs a TaskService with a real sqlite store in a temp dir.
func setupService(t *testing.T) *TaskService {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Open(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = b.Close() })
	return NewTaskService(b.Tasks())
}

func strPtr(s string) *string { return &s }

func TestTaskServiceCreate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		task, err := svc.Create(ctx, CreateTaskInput{Title: "Buy milk"}, "user-1")
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, types.StatusPending, task.Status)
		assert.Equal(t, types.PriorityMedium, task.Priority)
		assert.Equal(t, "user-1", task.OwnerID)
		assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
	})

	t.Run("explicit fields kept", func(t *testing.T) {
		due := time.Now().Add(24 * time.Hour).UTC()
		task, err := svc.Create(ctx, CreateTaskInput{
			Title:    "Write report",
			Status:   types.StatusInProgress,
			Priority: types.PriorityHigh,
			DueDate:  &due,
		}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, types.StatusInProgress, task.Status)
		assert.Equal(t, types.PriorityHigh, task.Priority)
		require.NotNil(t, task.DueDate)
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskInput{Title: ""}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)

		_, err = svc.Create(ctx, CreateTaskInput{Title: "ok", Status: "paused"}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestTaskServiceOwnershipGate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Private"}, "user-1")
	require.NoError(t, err)

	t.Run("owner reads it back", func(t *testing.T) {
		got, err := svc.Get(ctx, task.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := svc.Get(ctx, task.ID, "user-2")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NotErrorIs(t, err, types.ErrAccessDenied)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := svc.Update(ctx, task.ID, UpdateTaskInput{Title: strPtr("Hijacked")}, "user-2")
		assert.ErrorIs(t, err, types.ErrNotFound)

		got, err := svc.Get(ctx, task.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Private", got.Title)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, task.ID, "user-2")
		assert.ErrorIs(t, err, types.ErrNotFound)

		_, err = svc.Get(ctx, task.ID, "user-1")
		assert.NoError(t, err)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, "missing", "user-1")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Original", Description: "keep me"}, "user-1")
	require.NoError(t, err)

	t.Run("partial update touches only set fields", func(t *testing.T) {
		got, err := svc.Update(ctx, task.ID, UpdateTaskInput{Status: strPtr(types.StatusCompleted)}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, types.StatusCompleted, got.Status)
		assert.Equal(t, "Original", got.Title)
		assert.Equal(t, "keep me", got.Description)
	})

	t.Run("updated_at strictly increases", func(t *testing.T) {
		before, err := svc.Get(ctx, task.ID, "user-1")
		require.NoError(t, err)

		after, err := svc.Update(ctx, task.ID, UpdateTaskInput{Title: strPtr("Renamed")}, "user-1")
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
		assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
	})

	t.Run("invalid merge rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, task.ID, UpdateTaskInput{Title: strPtr("")}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)

		_, err = svc.Update(ctx, task.ID, UpdateTaskInput{Priority: strPtr("urgent")}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Doomed"}, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID, "user-1"))

	_, err = svc.Get(ctx, task.ID, "user-1")
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = svc.Delete(ctx, task.ID, "user-1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTaskServiceList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTaskInput{Title: "Buy milk"}, "user-1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskInput{Title: "Write report"}, "user-1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskInput{Title: "Buy milk too"}, "user-2")
	require.NoError(t, err)

	t.Run("title filter scoped to caller", func(t *testing.T) {
		res, err := svc.List(ctx, types.ListQuery{Title: "milk"}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalCount)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Buy milk", res.Items[0].Title)
	})

	t.Run("other user matches only their own", func(t *testing.T) {
		res, err := svc.List(ctx, types.ListQuery{Title: "milk"}, "user-2")
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalCount)
		assert.Equal(t, "Buy milk too", res.Items[0].Title)
	})

	t.Run("no matches yields empty page", func(t *testing.T) {
		res, err := svc.List(ctx, types.ListQuery{Title: "nothing"}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalCount)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("defaults normalize page and size", func(t *testing.T) {
		res, err := svc.List(ctx, types.ListQuery{}, "user-1")
		require.NoError(t, err)
		assert.Equal(t, types.DefaultPage, res.PageNumber)
		assert.Equal(t, types.DefaultPageSize, res.PageSize)
		assert.Equal(t, 2, res.TotalCount)
	})

	t.Run("invalid query rejected", func(t *testing.T) {
		_, err := svc.List(ctx, types.ListQuery{Status: "paused"}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)

		_, err = svc.List(ctx, types.ListQuery{SortBy: "owner_id"}, "user-1")
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

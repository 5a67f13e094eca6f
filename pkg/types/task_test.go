package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        "task-1",
		Title:     "Buy milk",
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
		OwnerID:   "owner-1",
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Task)
		wantField string
	}{
		{
			name:   "valid task passes",
			mutate: func(*Task) {},
		},
		{
			name:      "empty title",
			mutate:    func(task *Task) { task.Title = "" },
			wantField: "title",
		},
		{
			name:      "title over 100 characters",
			mutate:    func(task *Task) { task.Title = strings.Repeat("x", 101) },
			wantField: "title",
		},
		{
			name:   "title of exactly 100 characters",
			mutate: func(task *Task) { task.Title = strings.Repeat("x", 100) },
		},
		{
			name:   "title of 100 multi-byte characters",
			mutate: func(task *Task) { task.Title = strings.Repeat("é", 100) },
		},
		{
			name:      "title of 101 multi-byte characters",
			mutate:    func(task *Task) { task.Title = strings.Repeat("é", 101) },
			wantField: "title",
		},
		{
			name:      "unknown status",
			mutate:    func(task *Task) { task.Status = "paused" },
			wantField: "status",
		},
		{
			name:      "unknown priority",
			mutate:    func(task *Task) { task.Priority = "urgent" },
			wantField: "priority",
		},
		{
			name:      "empty owner",
			mutate:    func(task *Task) { task.OwnerID = "" },
			wantField: "owner_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(task)

			err := task.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))

	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("critical"))
	assert.False(t, ValidPriority(""))
}

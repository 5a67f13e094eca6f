package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// LoggingTaskService wraps a TaskManager and logs every call once, at this
// single boundary, instead of scattering log statements through the
// service. Errors pass through unchanged.
type LoggingTaskService struct {
	next TaskManager
	log  *slog.Logger
}

// Compile-time interface check.
var _ TaskManager = (*LoggingTaskService)(nil)

// NewLoggingTaskService wraps next with request logging.
func NewLoggingTaskService(next TaskManager, log *slog.Logger) *LoggingTaskService {
	return &LoggingTaskService{next: next, log: log}
}

func (l *LoggingTaskService) Create(ctx context.Context, in CreateTaskInput, ownerID string) (*types.Task, error) {
	start := time.Now()
	task, err := l.next.Create(ctx, in, ownerID)
	l.observe(ctx, "task.create", ownerID, start, err)
	return task, err
}

func (l *LoggingTaskService) Get(ctx context.Context, id, ownerID string) (*types.Task, error) {
	start := time.Now()
	task, err := l.next.Get(ctx, id, ownerID)
	l.observe(ctx, "task.get", ownerID, start, err)
	return task, err
}

func (l *LoggingTaskService) Update(ctx context.Context, id string, in UpdateTaskInput, ownerID string) (*types.Task, error) {
	start := time.Now()
	task, err := l.next.Update(ctx, id, in, ownerID)
	l.observe(ctx, "task.update", ownerID, start, err)
	return task, err
}

func (l *LoggingTaskService) Delete(ctx context.Context, id, ownerID string) error {
	start := time.Now()
	err := l.next.Delete(ctx, id, ownerID)
	l.observe(ctx, "task.delete", ownerID, start, err)
	return err
}

func (l *LoggingTaskService) List(ctx context.Context, q types.ListQuery, ownerID string) (*types.PagedResult, error) {
	start := time.Now()
	page, err := l.next.List(ctx, q, ownerID)
	l.observe(ctx, "task.list", ownerID, start, err)
	return page, err
}

func (l *LoggingTaskService) observe(ctx context.Context, op, ownerID string, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.String("owner_id", ownerID),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.log.LogAttrs(ctx, slog.LevelWarn, "task operation failed", attrs...)
		return
	}
	l.log.LogAttrs(ctx, slog.LevelDebug, "task operation", attrs...)
}

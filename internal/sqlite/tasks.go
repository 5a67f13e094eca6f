package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface check: Tasks must implement TaskStore.
var _ types.TaskStore = (*Tasks)(nil)

// taskColumns is the column list every task SELECT uses, in scan order.
const taskColumns = "id, title, description, due_date, status, priority, created_at, updated_at, owner_id"

// sortColumns maps the enumerated sortable field names to their columns.
// Anything outside this map is rejected before a query is built.
var sortColumns = map[string]string{
	types.SortByTitle:     "title",
	types.SortByStatus:    "status",
	types.SortByPriority:  "priority",
	types.SortByDueDate:   "due_date",
	types.SortByCreatedAt: "created_at",
	types.SortByUpdatedAt: "updated_at",
}

// Staged mutation kinds.
const (
	stageAdd = iota
	stageUpdate
	stageDelete
)

// change is one staged mutation awaiting Commit.
type change struct {
	kind int
	task *types.Task
}

// Tasks implements TaskStore over the SQLite backend. Mutations are staged
// in memory and drained by Commit inside a single transaction; stageMu keeps
// the pending batch consistent.
type Tasks struct {
	backend *Backend

	stageMu sync.Mutex
	pending []change
}

// FindByID returns the task with the given ID or ErrNotFound. Ownership is
// not checked here; the service gates access.
func (s *Tasks) FindByID(ctx context.Context, id string) (*types.Task, error) {
	db, err := s.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return task, nil
}

// FindFiltered executes spec against the tasks table. The total count is
// computed over the full filtered set before LIMIT/OFFSET, so pagination
// never distorts it. Equal sort keys are tie-broken by id ascending; an
// empty sortBy means created_at descending. take <= 0 means no limit.
func (s *Tasks) FindFiltered(ctx context.Context, spec *types.TaskSpec, sortBy string, sortDesc bool, skip, take int) ([]*types.Task, int, error) {
	if spec == nil {
		return nil, 0, types.NewValidationError("spec", "must not be nil")
	}
	orderBy, err := orderClause(sortBy, sortDesc)
	if err != nil {
		return nil, 0, err
	}

	db, err := s.backend.conn()
	if err != nil {
		return nil, 0, err
	}

	where, args := specConditions(spec)

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + where
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	limit := take
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query := "SELECT " + taskColumns + " FROM tasks WHERE " + where +
		" ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	rows, err := db.QueryContext(ctx, query, append(args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading tasks: %w", err)
	}
	return tasks, total, nil
}

// Add stages an insert.
func (s *Tasks) Add(t *types.Task) { s.stage(stageAdd, t) }

// Update stages an update.
func (s *Tasks) Update(t *types.Task) { s.stage(stageUpdate, t) }

// Delete stages a removal.
func (s *Tasks) Delete(t *types.Task) { s.stage(stageDelete, t) }

func (s *Tasks) stage(kind int, t *types.Task) {
	s.stageMu.Lock()
	defer s.stageMu.Unlock()
	s.pending = append(s.pending, change{kind: kind, task: t})
}

// Commit applies the staged batch in one transaction. The batch is consumed
// whether or not the commit succeeds; on a transient failure the caller
// restages and retries. A duplicate ID fails the whole batch with
// ErrConstraintViolation.
func (s *Tasks) Commit(ctx context.Context) error {
	s.stageMu.Lock()
	batch := s.pending
	s.pending = nil
	s.stageMu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	db, err := s.backend.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %w", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	for _, c := range batch {
		if err := applyChange(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tasks: %w: %w", types.ErrStorageUnavailable, err)
	}
	return nil
}

// applyChange executes one staged mutation inside tx.
func applyChange(ctx context.Context, tx *sql.Tx, c change) error {
	t := c.task
	switch c.kind {
	case stageAdd:
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM tasks WHERE id = ?", t.ID).Scan(&one)
		if err == nil {
			return fmt.Errorf("task %s already exists: %w", t.ID, types.ErrConstraintViolation)
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking task existence: %w: %w", types.ErrStorageUnavailable, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			t.ID, t.Title, t.Description, nullableTime(t.DueDate),
			t.Status, t.Priority, formatTime(t.CreatedAt), formatTime(t.UpdatedAt), t.OwnerID)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w: %w", t.ID, types.ErrStorageUnavailable, err)
		}
	case stageUpdate:
		res, err := tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?,
			 priority = ?, updated_at = ? WHERE id = ?`,
			t.Title, t.Description, nullableTime(t.DueDate),
			t.Status, t.Priority, formatTime(t.UpdatedAt), t.ID)
		if err != nil {
			return fmt.Errorf("updating task %s: %w: %w", t.ID, types.ErrStorageUnavailable, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("updating task %s: %w", t.ID, types.ErrNotFound)
		}
	case stageDelete:
		res, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", t.ID)
		if err != nil {
			return fmt.Errorf("deleting task %s: %w: %w", t.ID, types.ErrStorageUnavailable, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("deleting task %s: %w", t.ID, types.ErrNotFound)
		}
	}
	return nil
}

// specConditions translates a TaskSpec into a WHERE clause and its
// arguments. The owner constraint is always present; the SQL form must
// agree with TaskSpec.Match.
func specConditions(spec *types.TaskSpec) (string, []any) {
	conditions := []string{"owner_id = ?"}
	args := []any{spec.OwnerID()}

	if title, ok := spec.TitleContains(); ok {
		// Case-insensitive substring, same policy as TaskSpec.Match.
		conditions = append(conditions, "instr(lower(title), lower(?)) > 0")
		args = append(args, title)
	}
	if status, ok := spec.Status(); ok {
		conditions = append(conditions, "status = ?")
		args = append(args, status)
	}
	if due, ok := spec.DueDate(); ok {
		conditions = append(conditions, "due_date = ?")
		args = append(args, formatTime(due))
	}
	return strings.Join(conditions, " AND "), args
}

// orderClause maps a sortable field name to its ORDER BY clause. Unknown
// names are a validation error rather than a silent fallback.
func orderClause(sortBy string, sortDesc bool) (string, error) {
	if sortBy == "" {
		return "created_at DESC, id ASC", nil
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return "", types.NewValidationError("sort_by", "unknown sort field "+sortBy)
	}
	dir := "ASC"
	if sortDesc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC", nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask hydrates one tasks row.
func scanTask(row rowScanner) (*types.Task, error) {
	var (
		t         types.Task
		due       sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &due,
		&t.Status, &t.Priority, &createdAt, &updatedAt, &t.OwnerID)
	if err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if due.Valid {
		d, err := parseTime(due.String)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		t.DueDate = &d
	}
	return &t, nil
}

// nullableTime renders an optional timestamp for storage.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

package sqlite

// Schema DDL. Timestamps are stored as RFC 3339 strings with nanosecond
// precision; due_date is NULL when the task has no due date.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    due_date TEXT,
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    owner_id TEXT NOT NULL
);`

	createTasksOwnerIndex = `CREATE INDEX IF NOT EXISTS idx_tasks_owner_id
    ON tasks (owner_id);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists the statements Open executes, in order.
var schemaDDL = []string{
	createTasks,
	createTasksOwnerIndex,
	createUsers,
}

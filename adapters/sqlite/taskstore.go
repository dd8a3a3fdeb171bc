package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/artpar/actionkit/domain/task"
	"github.com/artpar/actionkit/ports"
)

// ErrNotFound aliases the store-level sentinel for callers holding only
// this package.
var ErrNotFound = ports.ErrNotFound

// TaskStore implements ports.TaskStore using SQLite.
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a new SQLite task store.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, notes, status, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

// List returns tasks ordered by creation time, newest first.
func (s *TaskStore) List(ctx context.Context, limit, offset int) ([]task.Task, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, notes, status, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Create stores a new task.
func (s *TaskStore) Create(ctx context.Context, t task.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Notes, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update replaces an existing task.
func (s *TaskStore) Update(ctx context.Context, t task.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, notes = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, t.Title, t.Notes, string(t.Status), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of tasks.
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (task.Task, error) {
	var t task.Task
	var status string
	err := row.Scan(&t.ID, &t.Title, &t.Notes, &status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Status = task.Status(status)
	return t, nil
}

// Ensure interface compliance.
var _ ports.TaskStore = (*TaskStore)(nil)

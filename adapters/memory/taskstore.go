// Package memory provides in-memory implementations of storage ports,
// used by tests and the demo application's ephemeral mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/artpar/actionkit/domain/task"
	"github.com/artpar/actionkit/ports"
)

// ErrNotFound aliases the store-level sentinel for callers holding only
// this package.
var ErrNotFound = ports.ErrNotFound

// TaskStore is an in-memory implementation of ports.TaskStore.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]task.Task)}
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(ctx context.Context, id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return t, nil
}

// List returns tasks ordered by creation time, newest first.
func (s *TaskStore) List(ctx context.Context, limit, offset int) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Create stores a new task.
func (s *TaskStore) Create(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
	return nil
}

// Update replaces an existing task.
func (s *TaskStore) Update(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	s.tasks[t.ID] = t
	return nil
}

// Delete removes a task.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Count returns the total number of tasks.
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

// Ensure interface compliance.
var _ ports.TaskStore = (*TaskStore)(nil)

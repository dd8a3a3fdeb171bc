package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/artpar/actionkit/domain/result"
	"github.com/artpar/actionkit/domain/task"
	"github.com/artpar/actionkit/ports"
	"github.com/rs/zerolog"
)

// TaskService implements the demo task CRUD operations. Each method has
// the action.ServiceFunc shape so it can be wired straight into an action
// config.
type TaskService struct {
	store  ports.TaskStore
	clock  ports.Clock
	idGen  ports.IDGenerator
	logger zerolog.Logger
}

// TaskDeps contains dependencies for TaskService.
type TaskDeps struct {
	Store  ports.TaskStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger zerolog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(deps TaskDeps) *TaskService {
	return &TaskService{
		store:  deps.Store,
		clock:  deps.Clock,
		idGen:  deps.IDGen,
		logger: deps.Logger,
	}
}

// List returns all tasks as a collection result. Optional "limit" and
// "offset" params page through the set.
func (s *TaskService) List(ctx context.Context, p map[string]any) (any, error) {
	limit := intParam(p, "limit", 100)
	offset := intParam(p, "offset", 0)

	tasks, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	items := make([]any, len(tasks))
	for i, t := range tasks {
		items[i] = t
	}
	return result.OkCollection(items).WithMeta("total", total), nil
}

// Get returns one task by the "id" param.
func (s *TaskService) Get(ctx context.Context, p map[string]any) (any, error) {
	id, _ := p["id"].(string)
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.wrapStoreErr(err, id)
	}
	return result.Ok(t), nil
}

// Create validates and stores a new task.
func (s *TaskService) Create(ctx context.Context, p map[string]any) (any, error) {
	now := s.clock.Now().UTC()
	t := task.Task{
		ID:        s.idGen.New(),
		Title:     stringParam(p, "title"),
		Notes:     stringParam(p, "notes"),
		Status:    task.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if st := stringParam(p, "status"); st != "" {
		t.Status = task.Status(st)
	}

	if errs := t.Validate(); len(errs) > 0 {
		return nil, ValidationErrorFrom(errs)
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Str("task_id", t.ID).Msg("task created")
	return result.Ok(t).WithMessage("Task created"), nil
}

// Update applies the permitted params to an existing task.
func (s *TaskService) Update(ctx context.Context, p map[string]any) (any, error) {
	id, _ := p["id"].(string)
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.wrapStoreErr(err, id)
	}

	if v, ok := p["title"].(string); ok {
		t.Title = v
	}
	if v, ok := p["notes"].(string); ok {
		t.Notes = v
	}
	if v, ok := p["status"].(string); ok {
		t.Status = task.Status(v)
	}
	t.UpdatedAt = s.clock.Now().UTC()

	if errs := t.Validate(); len(errs) > 0 {
		return nil, ValidationErrorFrom(errs)
	}
	if err := s.store.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return result.Ok(t).WithMessage("Task updated"), nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, p map[string]any) (any, error) {
	id, _ := p["id"].(string)
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.wrapStoreErr(err, id)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return result.Ok(t).WithMessage("Task deleted"), nil
}

// Toggle flips a task between open and done.
func (s *TaskService) Toggle(ctx context.Context, p map[string]any) (any, error) {
	id, _ := p["id"].(string)
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.wrapStoreErr(err, id)
	}

	if t.Status == task.StatusDone {
		t.Status = task.StatusOpen
	} else {
		t.Status = task.StatusDone
	}
	t.UpdatedAt = s.clock.Now().UTC()

	if err := s.store.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return result.Ok(t).WithMessage("Task " + string(t.Status)), nil
}

// Build returns an empty task for the new/edit forms.
func (s *TaskService) Build(ctx context.Context, p map[string]any) (any, error) {
	return result.Ok(task.Task{Status: task.StatusOpen}), nil
}

func (s *TaskService) wrapStoreErr(err error, id string) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	return err
}

func stringParam(p map[string]any, key string) string {
	v, _ := p[key].(string)
	return v
}

func intParam(p map[string]any, key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

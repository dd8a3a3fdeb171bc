package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/artpar/actionkit/adapters/clock"
	"github.com/artpar/actionkit/adapters/idgen"
	"github.com/artpar/actionkit/adapters/memory"
	"github.com/artpar/actionkit/app"
	"github.com/artpar/actionkit/domain/result"
	"github.com/artpar/actionkit/domain/task"
	"github.com/artpar/actionkit/ports"
	"github.com/rs/zerolog"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTaskService() (*app.TaskService, *memory.TaskStore, *clock.Fake) {
	store := memory.NewTaskStore()
	clk := clock.NewFake(baseTime)
	svc := app.NewTaskService(app.TaskDeps{
		Store:  store,
		Clock:  clk,
		IDGen:  idgen.NewSequential("task-"),
		Logger: zerolog.Nop(),
	})
	return svc, store, clk
}

func mustResult(t *testing.T, v any, err error) result.Result {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result.Normalize(v)
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTaskService()

	v, err := svc.Create(ctx, map[string]any{"title": "Write docs", "notes": "soon"})
	res := mustResult(t, v, err)

	if !res.Succeeded() {
		t.Fatalf("expected success: %+v", res)
	}
	created := res.Resource.(task.Task)
	if created.Title != "Write docs" || created.Status != task.StatusOpen {
		t.Errorf("created = %+v", created)
	}
	if created.CreatedAt != baseTime || created.UpdatedAt != baseTime {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if res.Message != "Task created" {
		t.Errorf("message = %q", res.Message)
	}

	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("store count = %d", n)
	}
}

func TestTaskService_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTaskService()

	_, err := svc.Create(ctx, map[string]any{"title": "  "})

	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["title"]) == 0 {
		t.Errorf("fields = %v", verr.Fields)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("invalid task persisted")
	}
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newTaskService()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, map[string]any{"title": title}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		clk.Advance(time.Minute)
	}

	v, err := svc.List(ctx, map[string]any{})
	res := mustResult(t, v, err)
	if len(res.Collection) != 3 {
		t.Fatalf("got %d items", len(res.Collection))
	}
	// Newest first.
	if res.Collection[0].(task.Task).Title != "third" {
		t.Errorf("order: %v", res.Collection[0])
	}
	if res.Meta["total"] != 3 {
		t.Errorf("meta = %v", res.Meta)
	}

	t.Run("pagination params", func(t *testing.T) {
		pv, perr := svc.List(ctx, map[string]any{"limit": "1", "offset": "1"})
		paged := mustResult(t, pv, perr)
		if len(paged.Collection) != 1 {
			t.Fatalf("got %d items", len(paged.Collection))
		}
		if paged.Collection[0].(task.Task).Title != "second" {
			t.Errorf("got %v", paged.Collection[0])
		}
	})
}

func TestTaskService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newTaskService()

	cv, cerr := svc.Create(ctx, map[string]any{"title": "x"})
	created := mustResult(t, cv, cerr).Resource.(task.Task)
	clk.Advance(time.Hour)

	t.Run("get", func(t *testing.T) {
		v, err := svc.Get(ctx, map[string]any{"id": created.ID})
		res := mustResult(t, v, err)
		if res.Resource.(task.Task).ID != created.ID {
			t.Errorf("got %+v", res.Resource)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.Get(ctx, map[string]any{"id": "nope"})
		if !errors.Is(err, app.ErrNotFound) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		v, err := svc.Update(ctx, map[string]any{"id": created.ID, "title": "renamed", "status": "done"})
		res := mustResult(t, v, err)
		updated := res.Resource.(task.Task)
		if updated.Title != "renamed" || updated.Status != task.StatusDone {
			t.Errorf("got %+v", updated)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("UpdatedAt not advanced")
		}
	})

	t.Run("update invalid", func(t *testing.T) {
		_, err := svc.Update(ctx, map[string]any{"id": created.ID, "title": ""})
		var verr *app.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("toggle", func(t *testing.T) {
		v, err := svc.Toggle(ctx, map[string]any{"id": created.ID})
		res := mustResult(t, v, err)
		// Last update set it to done; toggle flips back to open.
		if res.Resource.(task.Task).Status != task.StatusOpen {
			t.Errorf("got %+v", res.Resource)
		}
	})

	t.Run("delete", func(t *testing.T) {
		v, err := svc.Delete(ctx, map[string]any{"id": created.ID})
		res := mustResult(t, v, err)
		if !res.Succeeded() {
			t.Fatalf("delete failed: %+v", res)
		}
		if _, err := svc.Get(ctx, map[string]any{"id": created.ID}); !errors.Is(err, app.ErrNotFound) {
			t.Errorf("task still present: %v", err)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		_, err := svc.Delete(ctx, map[string]any{"id": "nope"})
		if !errors.Is(err, app.ErrNotFound) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestTaskService_Build(t *testing.T) {
	svc, _, _ := newTaskService()
	v, err := svc.Build(context.Background(), nil)
	res := mustResult(t, v, err)
	blank := res.Resource.(task.Task)
	if blank.ID != "" || blank.Status != task.StatusOpen {
		t.Errorf("got %+v", blank)
	}
}

// wrappingStore decorates a store the way a real adapter wraps driver
// failures, so sentinels only surface through the unwrap chain.
type wrappingStore struct {
	ports.TaskStore
}

func (s wrappingStore) Get(ctx context.Context, id string) (task.Task, error) {
	got, err := s.TaskStore.Get(ctx, id)
	if err != nil {
		return got, fmt.Errorf("select task: %w", err)
	}
	return got, nil
}

func TestTaskService_Get_WrappedStoreNotFound(t *testing.T) {
	svc := app.NewTaskService(app.TaskDeps{
		Store:  wrappingStore{memory.NewTaskStore()},
		Clock:  clock.NewFake(baseTime),
		IDGen:  idgen.NewSequential("task-"),
		Logger: zerolog.Nop(),
	})

	_, err := svc.Get(context.Background(), map[string]any{"id": "missing"})
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

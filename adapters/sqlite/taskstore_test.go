package sqlite_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/artpar/actionkit/adapters/sqlite"
	"github.com/artpar/actionkit/domain/task"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*sqlite.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "actionkit-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}
	return db, cleanup
}

func TestTaskStore_CRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := sqlite.NewTaskStore(db)

	in := task.Task{
		ID:        "t1",
		Title:     "Write docs",
		Notes:     "today",
		Status:    task.StatusOpen,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	if err := store.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != in.Title || got.Notes != in.Notes || got.Status != in.Status {
		t.Errorf("Get = %+v", got)
	}

	got.Title = "renamed"
	got.Status = task.StatusDone
	got.UpdatedAt = baseTime.Add(time.Hour)
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ = store.Get(ctx, "t1"); got.Title != "renamed" || got.Status != task.StatusDone {
		t.Errorf("after update: %+v", got)
	}

	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Errorf("Count = %d, %v", n, err)
	}

	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "t1"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
}

func TestTaskStore_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := sqlite.NewTaskStore(db)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Get: %v", err)
	}
	if err := store.Update(ctx, task.Task{ID: "missing", Title: "x"}); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Update: %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Delete: %v", err)
	}
}

func TestTaskStore_ListOrderAndPaging(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := sqlite.NewTaskStore(db)

	for i, id := range []string{"a", "b", "c"} {
		err := store.Create(ctx, task.Task{
			ID:        id,
			Title:     "task " + id,
			Status:    task.StatusOpen,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
			UpdatedAt: baseTime,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	got, err := store.List(ctx, 10, 0)
	if err != nil || len(got) != 3 {
		t.Fatalf("List: %v, %v", got, err)
	}
	if got[0].ID != "c" {
		t.Errorf("expected newest first, got %s", got[0].ID)
	}

	paged, err := store.List(ctx, 1, 1)
	if err != nil || len(paged) != 1 || paged[0].ID != "b" {
		t.Errorf("paged: %v, %v", paged, err)
	}
}

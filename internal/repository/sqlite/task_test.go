package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikkelsv/taskvault/internal/domain"
)

func TestTaskRepository_Create(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{
		UserID:      owner.ID,
		Title:       "buy milk",
		Description: "two liters",
	}

	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.ID == 0 {
		t.Fatal("expected task ID to be set after create")
	}
	if task.Completed {
		t.Fatal("expected new task to be incomplete")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestTaskRepository_GetByIDAndOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "buy milk", Description: "two liters"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByIDAndOwner(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetByIDAndOwner: %v", err)
	}
	if found.Title != "buy milk" || found.Description != "two liters" || found.Completed {
		t.Fatalf("round trip mismatch: %+v", found)
	}
}

func TestTaskRepository_GetByIDAndOwner_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "private"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another user's task must be indistinguishable from a missing one.
	_, err := repo.GetByIDAndOwner(ctx, task.ID, other.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner get, got %v", err)
	}
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, &domain.Task{UserID: owner.ID, Title: title}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := repo.Create(ctx, &domain.Task{UserID: other.ID, Title: "not yours"}); err != nil {
		t.Fatalf("Create other's task: %v", err)
	}

	tasks, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Title != want {
			t.Fatalf("expected task %d to be %q, got %q", i, want, tasks[i].Title)
		}
	}
}

func TestTaskRepository_ListByOwner_Empty(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	tasks, err := db.Tasks().ListByOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestTaskRepository_Update(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "before"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	createdAt := task.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	task.Title = "after"
	task.Completed = true
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !task.UpdatedAt.After(createdAt) {
		t.Fatalf("expected UpdatedAt to advance, was %v now %v", createdAt, task.UpdatedAt)
	}

	found, err := repo.GetByIDAndOwner(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetByIDAndOwner: %v", err)
	}
	if found.Title != "after" || !found.Completed {
		t.Fatalf("update not persisted: %+v", found)
	}
}

func TestTaskRepository_Update_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "private"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	task.UserID = other.ID
	task.Title = "hijacked"
	err := repo.Update(ctx, task)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner update, got %v", err)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "doomed"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, task.ID, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := repo.GetByIDAndOwner(ctx, task.ID, owner.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTaskRepository_Delete_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "private"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Delete(ctx, task.ID, other.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner delete, got %v", err)
	}

	// The row must still be there for its real owner.
	if _, err := repo.GetByIDAndOwner(ctx, task.ID, owner.ID); err != nil {
		t.Fatalf("task disappeared after cross-owner delete attempt: %v", err)
	}
}

func TestTaskRepository_ToggleCompleted(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "flip me"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	toggled, err := repo.ToggleCompleted(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("ToggleCompleted: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected completed=true after first toggle")
	}
	if !toggled.UpdatedAt.After(task.UpdatedAt) {
		t.Fatal("expected UpdatedAt to advance on toggle")
	}

	time.Sleep(5 * time.Millisecond)
	again, err := repo.ToggleCompleted(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("second ToggleCompleted: %v", err)
	}
	if again.Completed {
		t.Fatal("expected completed=false after second toggle")
	}
	if !again.UpdatedAt.After(toggled.UpdatedAt) {
		t.Fatal("expected UpdatedAt to advance on second toggle")
	}
}

func TestTaskRepository_ToggleCompleted_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := &domain.Task{UserID: owner.ID, Title: "private"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.ToggleCompleted(ctx, task.ID, other.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner toggle, got %v", err)
	}
}

package domain

import (
	"context"
	"time"
)

// Task is a todo item owned by exactly one user. The owner never
// changes after creation.
type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskRepository defines persistence operations for tasks. Every
// lookup and mutation is keyed by both task id and owner id in a
// single statement, so a row belonging to another user is
// indistinguishable from a row that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByIDAndOwner(ctx context.Context, id int64, ownerID string) (*Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64, ownerID string) error
	ToggleCompleted(ctx context.Context, id int64, ownerID string) (*Task, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mikkelsv/taskvault/internal/domain"
)

// TaskRepository implements domain.TaskRepository using SQLite.
//
// Ownership scoping is done in SQL: every per-task statement carries
// both id and user_id predicates, so there is no window between an
// ownership check and the actual read or write.
type TaskRepository struct {
	db *sql.DB
}

var _ domain.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new SQLite-backed TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db.SqlDB}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, task.Description, task.Completed, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id int64, ownerID string) (*domain.Task, error) {
	task := &domain.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, completed, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, ownerID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// ListByOwner returns the owner's tasks ordered by creation time
// ascending, ties broken by id.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, completed, created_at, updated_at
		 FROM tasks WHERE user_id = ? ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, completed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, task.Completed, now, task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	task.UpdatedAt = now
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleCompleted flips the completed flag in a single scoped UPDATE
// and returns the resulting row.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id int64, ownerID string) (*domain.Task, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = NOT completed, updated_at = ?
		 WHERE id = ? AND user_id = ?`, now, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByIDAndOwner(ctx, id, ownerID)
}

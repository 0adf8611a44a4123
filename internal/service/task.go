package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikkelsv/taskvault/internal/domain"
)

// MaxDescriptionLen is the maximum accepted task description length.
const MaxDescriptionLen = 1000

// TaskService validates input and performs ownership-scoped task
// operations. Every method takes the caller's user id and only ever
// touches rows owned by it; a task belonging to someone else surfaces
// as domain.ErrNotFound.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create persists a new task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string, completed bool) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if len(description) > MaxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be at most %d characters", domain.ErrInvalidInput, MaxDescriptionLen)
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   completed,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// List returns all tasks owned by ownerID, oldest first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// Get returns the task with the given id if ownerID owns it.
func (s *TaskService) Get(ctx context.Context, ownerID string, id int64) (*domain.Task, error) {
	return s.tasks.GetByIDAndOwner(ctx, id, ownerID)
}

// Update applies the supplied fields to the task; nil fields are left
// untouched. The update statement itself is scoped by owner, so the
// not-found rule is the same as Get's.
func (s *TaskService) Update(ctx context.Context, ownerID string, id int64, title, description *string, completed *bool) (*domain.Task, error) {
	task, err := s.tasks.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		task.Title = *title
	}
	if description != nil {
		if len(*description) > MaxDescriptionLen {
			return nil, fmt.Errorf("%w: description must be at most %d characters", domain.ErrInvalidInput, MaxDescriptionLen)
		}
		task.Description = *description
	}
	if completed != nil {
		task.Completed = *completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete permanently removes the task if ownerID owns it.
func (s *TaskService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.tasks.Delete(ctx, id, ownerID)
}

// ToggleComplete flips the task's completed flag and returns the
// updated row.
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID string, id int64) (*domain.Task, error) {
	return s.tasks.ToggleCompleted(ctx, id, ownerID)
}

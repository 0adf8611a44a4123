package handler

import (
	"time"

	"github.com/mikkelsv/taskvault/internal/domain"
)

// UserDTO is the public JSON representation of a user. It never
// carries the password hash.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// TaskDTO is the JSON representation of a task. The owner id is
// internal and never exposed.
type TaskDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTaskDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = toTaskDTO(&tasks[i])
	}
	return dtos
}

// UserUpdateRequest is the wire shape for profile updates. No route is
// registered for it yet.
type UserUpdateRequest struct {
	Name *string `json:"name"`
}

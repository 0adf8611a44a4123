package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mikkelsv/taskvault/internal/domain"
	"github.com/mikkelsv/taskvault/internal/service"
)

// TaskHandler handles task CRUD HTTP requests. All routes sit behind
// RequireAuth, so the caller's user id is always present in context.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleCreate creates a task owned by the caller.
// POST /api/tasks
// Request: {"title":"...","description":"...","completed":false}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, req.Title, req.Description, req.Completed)
	if err != nil {
		h.writeTaskError(w, err, "create task")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleList returns all of the caller's tasks, oldest first.
// GET /api/tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	tasks, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		slog.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleGet returns a single task. A task that exists but belongs to
// another user is reported exactly like one that does not exist.
// GET /api/tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, id)
	if err != nil {
		h.writeTaskError(w, err, "get task")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleUpdate applies a partial update. Absent fields are left
// untouched; updated_at is bumped.
// PUT /api/tasks/{id}
// Request: {"title":"...","description":"...","completed":true} (all optional)
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, id, req.Title, req.Description, req.Completed)
	if err != nil {
		h.writeTaskError(w, err, "update task")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleDelete permanently removes a task.
// DELETE /api/tasks/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, id); err != nil {
		h.writeTaskError(w, err, "delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// HandleToggleComplete flips the completed flag.
// PATCH /api/tasks/{id}/complete
func (h *TaskHandler) HandleToggleComplete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	task, err := h.tasks.ToggleComplete(r.Context(), userID, id)
	if err != nil {
		h.writeTaskError(w, err, "toggle task")
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Task not found.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// taskID parses the {id} route parameter. A non-numeric id cannot name
// any task, so callers treat it as not found.
func taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

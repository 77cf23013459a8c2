package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskmanager/api/internal/apperrors"
	"github.com/taskmanager/api/internal/models"
	"github.com/taskmanager/api/internal/service"
)

// TaskService defines the task operations required by the HTTP
// handlers. Every operation takes the raw Authorization header value
// and resolves the caller's identity itself.
type TaskService interface {
	List(ctx context.Context, bearer, status, priority string) ([]models.Task, error)
	Create(ctx context.Context, bearer string, req service.TaskRequest) (models.Task, error)
	Update(ctx context.Context, bearer, taskID string, req service.TaskRequest) (models.Task, error)
	Toggle(ctx context.Context, bearer, taskID string) (models.Task, error)
	Delete(ctx context.Context, bearer, taskID string) error
}

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	// TaskService performs the underlying task operations.
	TaskService TaskService
}

// List handles GET /api/tasks with optional status and priority query
// parameters. At most one filter is honored; status wins.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.List(
		r.Context(),
		r.Header.Get("Authorization"),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("priority"),
	)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	task, err := h.TaskService.Create(r.Context(), r.Header.Get("Authorization"), req)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	task, err := h.TaskService.Update(r.Context(), r.Header.Get("Authorization"), chi.URLParam(r, "id"), req)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Toggle handles PATCH /api/tasks/{id}/toggle.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.Toggle(r.Context(), r.Header.Get("Authorization"), chi.URLParam(r, "id"))
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.Delete(r.Context(), r.Header.Get("Authorization"), chi.URLParam(r, "id")); err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// writeTaskError maps the workflow error kinds to HTTP statuses.
// ErrForbidden maps to the same 404 as ErrNotFound so another user's
// task is indistinguishable from an absent one.
func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidToken):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrForbidden):
		http.Error(w, apperrors.ErrNotFound.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

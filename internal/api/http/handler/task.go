package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ZhuneIDS/apitareas/internal/api/http/response"
	"github.com/ZhuneIDS/apitareas/internal/apperror"
	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
)

// TaskService defines task CRUD operations.
type TaskService interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, title, description string) (model.Task, error)
	Update(ctx context.Context, id int64, title, description string) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

// TaskRequest is the body of create and update requests.
type TaskRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

// Task handles HTTP endpoints for tasks.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List handles GET /tareas.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Error al leer las tareas")
		return
	}

	response.JSON(w, http.StatusOK, tasks)
}

// Create handles POST /tareas.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		h.fail(w, r, err, "Error al agregar la tarea")
		return
	}

	response.JSON(w, http.StatusCreated, task)
}

// Update handles PUT /tareas/{id}.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, req.Title, req.Description)
	if err != nil {
		h.fail(w, r, err, "Error al actualizar la tarea")
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tareas/{id}.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Error al eliminar la tarea")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Task) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(w, apperror.NewErrBadRequest("Identificador de tarea inválido", err))
		return 0, false
	}
	return id, true
}

func (h *Task) decode(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if !decodeJSON(w, r, &req) {
		return TaskRequest{}, false
	}
	return req, true
}

func (h *Task) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	apiErr := handleError(err, fallback)
	username, _ := h.contextManager.GetUsernameFromContext(r.Context())

	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("Task handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"username", username,
			"error", err.Error())
	} else {
		h.logger.Info("Task handler: request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"username", username,
			"status", apiErr.Status,
			"error", err.Error())
	}

	response.Error(w, apiErr)
}

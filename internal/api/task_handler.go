package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskwise/taskwise-api/internal/api/shared"
	"github.com/taskwise/taskwise-api/internal/domain"
	"github.com/taskwise/taskwise-api/internal/platform/logger"
	"github.com/taskwise/taskwise-api/internal/store"
)

// dueDateLayout is the accepted format for the dueDate query parameter.
const dueDateLayout = "2006-01-02"

// TaskHandler handles task-related API requests. All operations act on
// behalf of the authenticated user; cross-user access is not possible
// because every store call carries the caller's user ID.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    log,
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Description, req.DueDate, req.Category)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid task data")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks. It supports optional status, category
// and dueDate query parameters; predicates compose conjunctively.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskStore.FindByFilter(r.Context(), userID, filter)
	if err != nil {
		log.Error("failed to list tasks", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to retrieve tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// SearchTasks handles GET /api/tasks/search?q=term. The query term matches
// case-insensitively against title and description as a literal substring.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Search query is required")
		return
	}

	tasks, err := h.taskStore.Search(r.Context(), userID, query)
	if err != nil {
		log.Error("failed to search tasks", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to search tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListTasksByCategory handles GET /api/tasks/category/{category}.
func (h *TaskHandler) ListTasksByCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	category := chi.URLParam(r, "category")
	if category == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Category is required")
		return
	}

	tasks, err := h.taskStore.FindByCategory(r.Context(), userID, category)
	if err != nil {
		log.Error("failed to list tasks by category",
			"error", err, "user_id", userID, "category", category)
		HandleAPIError(w, r, err, "Failed to retrieve tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id}. Omitted and empty fields keep
// their current values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetForUser(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.TaskStatus(req.Status),
		Category:    req.Category,
	}
	if err := patch.ApplyTo(task); err != nil {
		HandleAPIError(w, r, err, "Invalid task data")
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		log.Error("failed to update task", "error", err, "task_id", taskID)
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Message: "Task deleted successfully",
	})
}

// MarkCompleted handles POST /api/tasks/{id}/markCompleted.
func (h *TaskHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.TaskStatusCompleted)
}

// MarkPending handles POST /api/tasks/{id}/markPending.
func (h *TaskHandler) MarkPending(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.TaskStatusPending)
}

// setStatus performs the shared status-transition flow. The store applies
// the transition atomically against the owned record, so marking an
// already-completed task completed succeeds and simply refreshes UpdatedAt.
func (h *TaskHandler) setStatus(w http.ResponseWriter, r *http.Request, status domain.TaskStatus) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.SetStatus(r.Context(), taskID, userID, status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// filterFromQuery parses the optional list predicates from query parameters.
func filterFromQuery(r *http.Request) (domain.TaskFilter, error) {
	var filter domain.TaskFilter

	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.TaskStatus(status)
		if s != domain.TaskStatusPending && s != domain.TaskStatusCompleted {
			return domain.TaskFilter{}, domain.NewValidationError(
				"status", "must be pending or completed", domain.ErrValidation)
		}
		filter.Status = s
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = category
	}

	if dueDate := r.URL.Query().Get("dueDate"); dueDate != "" {
		day, err := time.ParseInLocation(dueDateLayout, dueDate, time.Local)
		if err != nil {
			return domain.TaskFilter{}, domain.NewValidationError(
				"dueDate", "must be formatted as YYYY-MM-DD", domain.ErrValidation)
		}
		filter.DueOn = &day
	}

	return filter, nil
}

package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/api/tasks/v1"

	"github.com/hal9000y/exec-assistant/internal/gservice"
	"github.com/hal9000y/exec-assistant/internal/respond"
)

const maxTasks = 20

type tasksSvc interface {
	ListTasks(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error)
	InsertTask(ctx context.Context, task *tasks.Task) (*tasks.Task, error)
	CompleteTask(ctx context.Context, taskID string) (*tasks.Task, error)
}

// TaskRequest is the body of POST /api/tasks/add.
type TaskRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
	Due   string `json:"due"`
}

type Tasks struct {
	svc    tasksSvc
	logger *zap.Logger
}

func NewTasks(svc tasksSvc, logger *zap.Logger) *Tasks {
	return &Tasks{svc: svc, logger: logger}
}

// List handles GET /api/tasks. Completed tasks are included with ?showCompleted=true.
func (h *Tasks) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListTasks(r.Context(), gservice.TasksQuery{
		ShowCompleted: r.URL.Query().Get("showCompleted") == "true",
		MaxResults:    maxTasks,
	})
	if err != nil && !errors.Is(err, gservice.ErrNoTaskList) {
		h.logger.Error("list tasks failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	if items == nil {
		items = []*tasks.Task{}
	}

	respond.JSON(w, http.StatusOK, items)
}

// Add handles POST /api/tasks/add.
func (h *Tasks) Add(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respond.Error(w, http.StatusBadRequest, "Task title is required")
		return
	}

	due := req.Due
	if dateOnly.MatchString(due) {
		due += "T00:00:00.000Z"
	}

	created, err := h.svc.InsertTask(r.Context(), &tasks.Task{Title: req.Title, Notes: req.Notes, Due: due})
	if errors.Is(err, gservice.ErrNoTaskList) {
		respond.Error(w, http.StatusBadRequest, "No task list found")
		return
	}
	if err != nil {
		h.logger.Error("insert task failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to add task")
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Complete handles PATCH /api/tasks/{taskId}/complete.
func (h *Tasks) Complete(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.CompleteTask(r.Context(), r.PathValue("taskId"))
	if errors.Is(err, gservice.ErrNoTaskList) {
		respond.Error(w, http.StatusBadRequest, "No task list found")
		return
	}
	if err != nil {
		h.logger.Error("complete task failed", zap.Error(err), zap.String("task_id", r.PathValue("taskId")))
		respond.Error(w, http.StatusInternalServerError, "Failed to complete task")
		return
	}

	respond.JSON(w, http.StatusOK, task)
}

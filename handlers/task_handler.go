package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// TaskService is the part of services.TaskService the HTTP layer uses
type TaskService interface {
	Create(ctx context.Context, actorID, boardID uuid.UUID, req dto.CreateTaskRequest) (*models.Task, error)
	Get(ctx context.Context, actorID, taskID uuid.UUID) (*models.Task, error)
	ListByBoard(ctx context.Context, actorID, boardID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error)
	Update(ctx context.Context, actorID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, actorID, taskID uuid.UUID) error
	AddComment(ctx context.Context, actorID, taskID uuid.UUID, req dto.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, actorID, taskID uuid.UUID) ([]*models.Comment, error)
}

// TaskHandler handles task and comment requests
type TaskHandler struct {
	tasks  TaskService
	logger *zap.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// HandleCreate handles POST /boards/{boardID}/tasks
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	boardID, ok := pathUUID(w, r, "boardID", h.logger)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeBody(w, r, dto.CreateTaskSchema, &req, h.logger) {
		return
	}

	task, err := h.tasks.Create(r.Context(), actorID, boardID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, task)
}

// HandleList handles GET /boards/{boardID}/tasks?status=&assignee=
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	boardID, ok := pathUUID(w, r, "boardID", h.logger)
	if !ok {
		return
	}
	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	tasks, err := h.tasks.ListByBoard(r.Context(), actorID, boardID, filter)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, tasks)
}

// HandleGet handles GET /tasks/{taskID}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathUUID(w, r, "taskID", h.logger)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), actorID, taskID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, task)
}

// HandleUpdate handles PATCH /tasks/{taskID}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathUUID(w, r, "taskID", h.logger)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeBody(w, r, dto.UpdateTaskSchema, &req, h.logger) {
		return
	}

	task, err := h.tasks.Update(r.Context(), actorID, taskID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, task)
}

// HandleDelete handles DELETE /tasks/{taskID}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathUUID(w, r, "taskID", h.logger)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), actorID, taskID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// HandleAddComment handles POST /tasks/{taskID}/comments
func (h *TaskHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathUUID(w, r, "taskID", h.logger)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !decodeBody(w, r, dto.CreateCommentSchema, &req, h.logger) {
		return
	}

	comment, err := h.tasks.AddComment(r.Context(), actorID, taskID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, comment)
}

// HandleListComments handles GET /tasks/{taskID}/comments
func (h *TaskHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathUUID(w, r, "taskID", h.logger)
	if !ok {
		return
	}

	comments, err := h.tasks.ListComments(r.Context(), actorID, taskID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, comments)
}

var taskStatuses = map[models.TaskStatus]bool{
	models.TaskTodo:       true,
	models.TaskInProgress: true,
	models.TaskReview:     true,
	models.TaskDone:       true,
}

func parseTaskFilter(r *http.Request) (repositories.TaskFilter, error) {
	var filter repositories.TaskFilter
	q := r.URL.Query()

	page, err := parsePage(r)
	if err != nil {
		return filter, err
	}
	filter.Page = page

	if v := q.Get("status"); v != "" {
		status := models.TaskStatus(v)
		if !taskStatuses[status] {
			return filter, utils.NewFieldValidationError([]utils.FieldError{{
				Field:   "status",
				Code:    utils.CodeEnum,
				Message: "must be one of: todo, in_progress, review, done",
			}})
		}
		filter.Status = &status
	}
	if v := q.Get("assignee"); v != "" {
		id, err := utils.ParseUUID(v, "assignee")
		if err != nil {
			return filter, err
		}
		filter.AssigneeID = &id
	}
	return filter, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

// TaskService manages tasks, their comments and the notifications they trigger
type TaskService struct {
	tasks         repositories.TaskRepository
	boards        repositories.BoardRepository
	projects      repositories.ProjectRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	txMgr         repositories.TransactionManager
	members       *membership
	activity      *ActivityService
	logger        *zap.Logger
}

// TaskServiceDeps groups the repositories a TaskService reads and writes
type TaskServiceDeps struct {
	Tasks         repositories.TaskRepository
	Boards        repositories.BoardRepository
	Projects      repositories.ProjectRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
	Workspaces    repositories.WorkspaceRepository
	TxMgr         repositories.TransactionManager
}

// NewTaskService creates a new TaskService
func NewTaskService(deps TaskServiceDeps, activity *ActivityService, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:         deps.Tasks,
		boards:        deps.Boards,
		projects:      deps.Projects,
		comments:      deps.Comments,
		notifications: deps.Notifications,
		txMgr:         deps.TxMgr,
		members:       newMembership(deps.Workspaces),
		activity:      activity,
		logger:        logger,
	}
}

// Create adds a task to a board. Assigning someone other than the actor notifies them.
// Create, Update and AddComment refuse tasks whose project is archived.
func (s *TaskService) Create(ctx context.Context, actorID, boardID uuid.UUID, req dto.CreateTaskRequest) (*models.Task, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fromRepository(err, ErrBoardNotFound, "get board")
	}
	if _, err := s.members.requireWriter(ctx, board.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	if err := s.requireActiveProject(ctx, board.ProjectID); err != nil {
		return nil, err
	}
	if req.AssigneeID != nil {
		if err := s.requireAssignable(ctx, board.WorkspaceID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := models.NewTask(board, strings.TrimSpace(req.Title), actorID)
	task.Description = req.Description
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	task.AssigneeID = req.AssigneeID
	task.DueDate = req.DueDate
	if req.Position != nil {
		task.Position = *req.Position
	}

	err = WithTransaction(ctx, s.txMgr, func(ctx context.Context) error {
		if err := s.tasks.Create(ctx, task); err != nil {
			return err
		}
		return s.notifyAssignee(ctx, task, actorID)
	})
	if err != nil {
		return nil, fromRepository(err, ErrBoardNotFound, "create task")
	}

	s.activity.Record(ctx, models.NewActivityLog(task.WorkspaceID, actorID, models.ActivityTaskCreated, models.ResourceTask, task.ID).
		WithDetails(map[string]interface{}{"title": task.Title, "board_id": board.ID.String()}))
	return task, nil
}

// Get returns a task the actor can see
func (s *TaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fromRepository(err, ErrTaskNotFound, "get task")
	}
	if _, err := s.members.require(ctx, task.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByBoard returns a board's tasks ordered by position, optionally filtered
func (s *TaskService) ListByBoard(ctx context.Context, actorID, boardID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fromRepository(err, ErrBoardNotFound, "get board")
	}
	if _, err := s.members.require(ctx, board.WorkspaceID, actorID); err != nil {
		return nil, err
	}

	list, err := s.tasks.ListByBoard(ctx, boardID, filter)
	if err != nil {
		return nil, WrapInternal("failed to list tasks", err)
	}
	if list == nil {
		list = []*models.Task{}
	}
	return list, nil
}

// Update applies a partial update. Changing the assignee to someone other than
// the actor notifies the new assignee.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fromRepository(err, ErrTaskNotFound, "get task")
	}
	if _, err := s.members.requireWriter(ctx, task.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	if err := s.requireActiveProject(ctx, task.ProjectID); err != nil {
		return nil, err
	}

	var changed []string
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrBlankTaskTitle
		}
		task.Title = title
		changed = append(changed, "title")
	}
	if req.Description != nil {
		task.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.Status != nil {
		task.Status = *req.Status
		changed = append(changed, "status")
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
		changed = append(changed, "priority")
	}
	if req.DueDate.Set {
		task.DueDate = req.DueDate.Value
		changed = append(changed, "due_date")
	}
	if req.Position != nil {
		task.Position = *req.Position
		changed = append(changed, "position")
	}

	reassigned := false
	if req.AssigneeID.Set {
		next := req.AssigneeID.Value
		if next != nil {
			if err := s.requireAssignable(ctx, task.WorkspaceID, *next); err != nil {
				return nil, err
			}
			reassigned = !task.IsAssignedTo(*next)
		}
		task.AssigneeID = next
		changed = append(changed, "assignee_id")
	}

	err = WithTransaction(ctx, s.txMgr, func(ctx context.Context) error {
		if err := s.tasks.Update(ctx, task); err != nil {
			return err
		}
		if reassigned {
			return s.notifyAssignee(ctx, task, actorID)
		}
		return nil
	})
	if err != nil {
		return nil, fromRepository(err, ErrTaskNotFound, "update task")
	}

	s.activity.Record(ctx, models.NewActivityLog(task.WorkspaceID, actorID, models.ActivityTaskUpdated, models.ResourceTask, task.ID).
		WithDetails(map[string]interface{}{"fields": changed}))
	return task, nil
}

// Delete removes a task and its comments
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fromRepository(err, ErrTaskNotFound, "get task")
	}
	if _, err := s.members.requireWriter(ctx, task.WorkspaceID, actorID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fromRepository(err, ErrTaskNotFound, "delete task")
	}

	s.activity.Record(ctx, models.NewActivityLog(task.WorkspaceID, actorID, models.ActivityTaskDeleted, models.ResourceTask, task.ID).
		WithDetails(map[string]interface{}{"title": task.Title}))
	return nil
}

// AddComment posts a comment. The assignee is notified unless they wrote it.
func (s *TaskService) AddComment(ctx context.Context, actorID, taskID uuid.UUID, req dto.CreateCommentRequest) (*models.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyCommentBody
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fromRepository(err, ErrTaskNotFound, "get task")
	}
	if _, err := s.members.requireWriter(ctx, task.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	if err := s.requireActiveProject(ctx, task.ProjectID); err != nil {
		return nil, err
	}

	comment := models.NewComment(task.ID, actorID, body)
	err = WithTransaction(ctx, s.txMgr, func(ctx context.Context) error {
		if err := s.comments.Create(ctx, comment); err != nil {
			return err
		}
		if task.AssigneeID == nil || *task.AssigneeID == actorID {
			return nil
		}
		n := models.NewNotification(*task.AssigneeID, models.NotificationCommentAdded,
			fmt.Sprintf("New comment on %q", task.Title), models.ResourceTask, task.ID)
		n.Body = body
		return s.notifications.Create(ctx, n)
	})
	if err != nil {
		return nil, fromRepository(err, ErrTaskNotFound, "add comment")
	}

	s.activity.Record(ctx, models.NewActivityLog(task.WorkspaceID, actorID, models.ActivityCommentAdded, models.ResourceComment, comment.ID).
		WithDetails(map[string]interface{}{"task_id": task.ID.String()}))
	return comment, nil
}

// ListComments returns a task's comments oldest first
func (s *TaskService) ListComments(ctx context.Context, actorID, taskID uuid.UUID) ([]*models.Comment, error) {
	if _, err := s.Get(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	list, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, WrapInternal("failed to list comments", err)
	}
	if list == nil {
		list = []*models.Comment{}
	}
	return list, nil
}

func (s *TaskService) requireActiveProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fromRepository(err, ErrProjectNotFound, "get project")
	}
	if project.IsArchived() {
		return ErrProjectArchived
	}
	return nil
}

func (s *TaskService) requireAssignable(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if _, err := s.members.require(ctx, workspaceID, userID); err != nil {
		if IsForbiddenError(err) {
			return ErrInvalidAssignee
		}
		return err
	}
	return nil
}

// notifyAssignee stores a task_assigned notification unless the actor assigned themselves
func (s *TaskService) notifyAssignee(ctx context.Context, task *models.Task, actorID uuid.UUID) error {
	if task.AssigneeID == nil || *task.AssigneeID == actorID {
		return nil
	}
	n := models.NewNotification(*task.AssigneeID, models.NotificationTaskAssigned,
		fmt.Sprintf("You were assigned %q", task.Title), models.ResourceTask, task.ID)
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("assignee notified",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", task.AssigneeID.String()))
	return nil
}
